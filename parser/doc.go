// Package parser tokenizes delimited text under an explicit dialect.
//
// Input is consumed line by line through a LineSource. LineReader provides
// universal newline handling: "\n", "\r\n" and a lone "\r" all end a line and
// are reported as "\n". Reader turns lines into records following the quoting,
// escaping and whitespace rules of a model.Dialect; a quoted field may span
// several lines.
package parser
