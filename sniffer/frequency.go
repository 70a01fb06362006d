package sniffer

import (
	"strings"
)

const (
	// asciiSize is the number of 7-bit characters considered as delimiters, NUL through '~'.
	asciiSize = 127
	// chunkSize is the number of lines added to the tables per round.
	chunkSize = 10
	// minConsistency is the lowest share of lines a delimiter's mode must hold for.
	minConsistency = 0.9
)

// tally is how many lines (count) contain a character freq times.
type tally struct {
	freq  int
	count int
}

// guessDelimiter picks the character that appears the same number of times
// on the most lines. Lines are added chunkSize at a time until exactly one
// candidate is found or the sample runs out.
func guessDelimiter(sample, delimiters string) (rune, bool) {
	var lines []string
	for _, line := range strings.Split(sample, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	chunk := min(chunkSize, len(lines))
	var (
		// freqs holds, per character, the tallies in the order each
		// frequency was first seen.
		freqs     [asciiSize][]tally
		modes     [asciiSize]tally
		haveMode  [asciiSize]bool
		delims    = make(map[rune]tally)
		iteration = 0
	)

	for start, end := 0, chunk; start < len(lines); start, end = end, end+chunk {
		iteration++
		for _, line := range lines[start:min(end, len(lines))] {
			var counts [asciiSize]int
			for _, r := range line {
				if r < asciiSize {
					counts[r]++
				}
			}
			for c := range counts {
				freqs[c] = addTally(freqs[c], counts[c])
			}
		}

		for c, items := range freqs {
			if len(items) == 0 || (len(items) == 1 && items[0].freq == 0) {
				continue
			}
			modes[c] = mode(items)
			haveMode[c] = true
		}

		total := float64(min(chunk*iteration, len(lines)))
		for consistency := 1.0; len(delims) == 0 && consistency >= minConsistency; consistency -= 0.01 {
			for c, v := range modes {
				if !haveMode[c] || v.freq <= 0 || v.count <= 0 {
					continue
				}
				if float64(v.count)/total >= consistency && allowed(rune(c), delimiters) {
					delims[rune(c)] = v
				}
			}
		}

		if len(delims) == 1 {
			for d := range delims {
				return d, initialSpace(lines[0], d)
			}
		}
	}

	if len(delims) == 0 {
		return 0, false
	}

	for _, d := range preferred {
		if _, ok := delims[d]; ok {
			return d, initialSpace(lines[0], d)
		}
	}

	var (
		best     rune
		bestMode tally
		first    = true
	)
	for d, v := range delims {
		if first || dominates(v, d, bestMode, best) {
			best, bestMode, first = d, v, false
		}
	}
	return best, initialSpace(lines[0], best)
}

func addTally(items []tally, freq int) []tally {
	for i := range items {
		if items[i].freq == freq {
			items[i].count++
			return items
		}
	}
	return append(items, tally{freq: freq, count: 1})
}

// mode returns the most common frequency, first seen on ties, with its line
// count reduced by the lines that disagree with it.
func mode(items []tally) tally {
	if len(items) == 1 {
		return items[0]
	}
	best := 0
	for i := 1; i < len(items); i++ {
		if items[i].count > items[best].count {
			best = i
		}
	}
	m := items[best]
	for i, item := range items {
		if i != best {
			m.count -= item.count
		}
	}
	return m
}

// dominates orders candidates by frequency, then line count, then character.
func dominates(v tally, d rune, than tally, thanRune rune) bool {
	if v.freq != than.freq {
		return v.freq > than.freq
	}
	if v.count != than.count {
		return v.count > than.count
	}
	return d > thanRune
}

// initialSpace reports whether every delimiter on line is followed by a space.
func initialSpace(line string, d rune) bool {
	return strings.Count(line, string(d)) == strings.Count(line, string(d)+" ")
}
