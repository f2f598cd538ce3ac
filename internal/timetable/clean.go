package timetable

import (
	"regexp"
	"strings"
)

// Cell cleanup is a best-effort heuristic tuned to one institution's
// timetable format, not an exact grammar. The passes below run in a
// fixed order and each operates on the already-partially-cleaned
// string, so the ordering is load-bearing: room extraction must run
// before the generic parenthetical strip, and the denylist before the
// lone-initial strip.

var (
	parenRe       = regexp.MustCompile(`\(([^)]*)\)`)
	roomCodeRe    = regexp.MustCompile(`\b[A-Za-z0-9]+(?:-[A-Za-z0-9]+)+\b`)
	fourDigitRe   = regexp.MustCompile(`\b\d{4}\b`)
	alnumRoomRe   = regexp.MustCompile(`\b\d{3,4}[A-Za-z]\b`)
	honorificRe   = regexp.MustCompile(`\b(?:Dr|Prof|Mr|Mrs|Ms)\.?\s+[A-Z][A-Za-z.]*(?:\s+[A-Z][A-Za-z.]*)*`)
	batchCodeRe   = regexp.MustCompile(`\b[A-Z]{2,}[-/]?\d+[A-Za-z0-9/-]*\b`)
	loneInitialRe = regexp.MustCompile(`\b[A-Za-z]\b`)
	spaceRe       = regexp.MustCompile(`\s+`)
	trailPunctRe  = regexp.MustCompile(`[-,.;:&/]+$`)
	nonLetterRe   = regexp.MustCompile(`[^A-Za-z]`)
	digitRe       = regexp.MustCompile(`\d`)
)

// CellResult is the outcome of cleaning one timetable cell.
type CellResult struct {
	Subject string
	Room    string
	// Ignored holds the remainder of a multi-entry cell. Only the
	// first line/comma-segment of a cell is parsed; co-scheduled
	// entries are reported, not extracted.
	Ignored string
}

// CleanCell scrubs one cell's free-form text into a subject name and
// an optional room code.
func CleanCell(text string, denylist *Denylist) CellResult {
	segment, ignored := firstSegment(text)

	cleaned, room := extractRoom(segment)
	cleaned = stripHonorifics(cleaned)
	cleaned = stripBatchCodes(cleaned)
	cleaned = stripParentheticals(cleaned)
	cleaned = denylist.Strip(cleaned)
	cleaned = stripLoneInitials(cleaned)
	cleaned = tidy(cleaned)
	if cleaned == "" {
		cleaned = fallbackSubject(segment)
	}

	return CellResult{Subject: cleaned, Room: room, Ignored: ignored}
}

// firstSegment keeps the first line, then the first comma segment of a
// multi-entry cell, returning the dropped remainder.
func firstSegment(text string) (segment, rest string) {
	segment = strings.TrimSpace(text)
	if idx := strings.IndexAny(segment, "\n"); idx >= 0 {
		rest = strings.TrimSpace(segment[idx+1:])
		segment = strings.TrimSpace(segment[:idx])
	}
	if idx := strings.Index(segment, ","); idx >= 0 {
		tail := strings.TrimSpace(segment[idx+1:])
		if rest == "" {
			rest = tail
		} else if tail != "" {
			rest = tail + "; " + rest
		}
		segment = strings.TrimSpace(segment[:idx])
	}
	return segment, rest
}

// extractRoom pulls a room token out of the cell text. Priority order:
// an institution code inside parentheses, the same code pattern bare,
// then generic four-digit or digits-plus-letter tokens.
func extractRoom(text string) (cleaned, room string) {
	for _, match := range parenRe.FindAllStringSubmatch(text, -1) {
		inner := strings.TrimSpace(match[1])
		if isRoomCode(inner) {
			return strings.TrimSpace(strings.Replace(text, match[0], " ", 1)), inner
		}
	}
	for _, match := range roomCodeRe.FindAllString(text, -1) {
		if isRoomCode(match) {
			return strings.TrimSpace(strings.Replace(text, match, " ", 1)), match
		}
	}
	for _, re := range []*regexp.Regexp{fourDigitRe, alnumRoomRe} {
		if match := re.FindString(text); match != "" {
			return strings.TrimSpace(strings.Replace(text, match, " ", 1)), match
		}
	}
	return text, ""
}

// isRoomCode reports whether a token looks like an institution room
// code: at least three dash-joined alphanumeric segments with a
// digit, e.g. "3102B-BL3-FF". Two-segment tokens are left for the
// batch-code pass, which owns codes like "BCS-3A".
func isRoomCode(token string) bool {
	if strings.Count(token, "-") < 2 {
		return false
	}
	if roomCodeRe.FindString(token) != token {
		return false
	}
	return digitRe.MatchString(token)
}

func stripHonorifics(text string) string {
	return honorificRe.ReplaceAllString(text, " ")
}

func stripBatchCodes(text string) string {
	return batchCodeRe.ReplaceAllString(text, " ")
}

func stripParentheticals(text string) string {
	return parenRe.ReplaceAllString(text, " ")
}

func stripLoneInitials(text string) string {
	return loneInitialRe.ReplaceAllString(text, " ")
}

func tidy(text string) string {
	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
	return strings.TrimSpace(trailPunctRe.ReplaceAllString(text, ""))
}

// fallbackSubject recovers a non-empty subject from the pre-cleanup
// text when every pass stripped the cell bare: the first three
// whitespace tokens with non-letters removed.
func fallbackSubject(raw string) string {
	tokens := strings.Fields(raw)
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = nonLetterRe.ReplaceAllString(token, "")
		if token == "" {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}
