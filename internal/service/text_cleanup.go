package service

import "strings"

const doubleCRLF = "\r\n\r\n"

// CleanRecoveredText strips every tab and every doubled CR-LF from the
// sanitizer payload. Removal repeats until no doubled CR-LF is left.
func CleanRecoveredText(s string) string {
	s = strings.ReplaceAll(s, "\t", "")
	for strings.Contains(s, doubleCRLF) {
		s = strings.ReplaceAll(s, doubleCRLF, "")
	}
	return s
}
