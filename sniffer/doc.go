// Package sniffer deduces the dialect of delimited text from a sample.
//
// Sniffing runs in two passes. The first looks for quoted fields and takes
// the quote character and delimiter from their surroundings. When that finds
// no delimiter, the second pass picks the character whose per-line frequency
// is the most consistent across the sample.
//
//	d, err := sniffer.Sniff("id,name\n1,Ann\n2,Bo\n", "")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%q\n", d.Delimiter) // ','
package sniffer
