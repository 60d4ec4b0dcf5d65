package editor

// MatchPrinting scans the printing dropdown for the option whose display text
// equals the requested label exactly. No substring or fuzzy matching: the
// remote catalog labels printings as `Name (SET #number)` and anything less
// than a literal match risks selecting the wrong print silently.
//
// Returns the option value to select and whether a match was found. texts and
// values are parallel slices read from the dropdown.
func MatchPrinting(label string, texts, values []string) (string, bool) {
	for i, text := range texts {
		if text == label {
			if i < len(values) {
				return values[i], true
			}
			return "", false
		}
	}
	return "", false
}
