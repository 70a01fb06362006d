// Package driver provides a database/sql driver that loads delimited text
// files into an in-memory SQLite database.
//
// Every file is read with csvsniff, so its encoding and dialect are detected
// rather than declared, and becomes one table named after the file. Columns
// are typed INTEGER, REAL or TEXT from their values.
//
// Usage:
//
//	import _ "github.com/nao1215/csvsniff/driver"
//	db, err := sql.Open("csvsniff", "pets.csv;places.csv?skip=6")
//
// The DSN is a semicolon separated list of files or directories, optionally
// followed by a query string:
//
//   - skip: lines ignored at the top of every file
//   - sample: lines the dialect is sniffed from
//   - encoding: forced text encoding
//   - delimiters: characters the sniffer may choose as delimiter
//
// Changes made through INSERT, UPDATE or DELETE stay in memory. Each
// connection holds its own copy of the data.
package driver
