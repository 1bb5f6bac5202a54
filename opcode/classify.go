package opcode

import (
	"regexp"
	"strconv"
	"strings"
)

// Anchored shapes of the instruction grammar. Literals are unsigned decimal;
// the 0xFF in the nibble-swap shape is part of the wire format, not a parsed
// value.
var (
	addRe     = regexp.MustCompile(`^\(\s*n\s*\+\s*(\d+)\s*\)\s*%\s*256$`)
	subWrapRe = regexp.MustCompile(`^\(\s*n\s*-\s*(\d+)\s*\+\s*256\s*\)\s*%\s*256$`)
	xorRe     = regexp.MustCompile(`^n\s*\^\s*(\d+)$`)
	notRe     = regexp.MustCompile(`^~\s*n\s*&\s*255$`)
	nibbleRe  = regexp.MustCompile(`^\(\s*n\s*<<\s*(\d+)\s*\|\s*\(\s*n\s*&\s*0xFF\s*\)\s*>>\s*(\d+)\s*\)\s*&\s*255$`)
)

// Classify parses one instruction into an Op. It is pure and total: text that
// matches no shape yields a KindUnknown op rather than an error, leaving the
// failure policy to the evaluator's caller.
func Classify(text string) Op {
	text = strings.TrimSpace(text)

	if m := addRe.FindStringSubmatch(text); m != nil {
		return opWithArg(KindAdd, m[1], text)
	}
	if m := subWrapRe.FindStringSubmatch(text); m != nil {
		return opWithArg(KindSubWrap, m[1], text)
	}
	if m := xorRe.FindStringSubmatch(text); m != nil {
		return opWithArg(KindXor, m[1], text)
	}
	if notRe.MatchString(text) {
		return Op{Kind: KindNot, Raw: text}
	}
	if m := nibbleRe.FindStringSubmatch(text); m != nil {
		l, errL := strconv.Atoi(m[1])
		r, errR := strconv.Atoi(m[2])
		if errL != nil || errR != nil {
			return Op{Kind: KindUnknown, Raw: text}
		}
		return Op{Kind: KindNibbleSwap, LShift: l, RShift: r, Raw: text}
	}

	return classifyLoose(text)
}

func opWithArg(kind Kind, literal, raw string) Op {
	v, err := strconv.Atoi(literal)
	if err != nil {
		// \d+ only fails Atoi on overflow; treat it as unparseable.
		return Op{Kind: KindUnknown, Raw: raw}
	}
	return Op{Kind: kind, Arg: v, Raw: raw}
}

// classifyLoose re-reads text that missed the anchored shapes by locating the
// operator and trailing literal structurally. It accepts only the same small
// grammar with sloppier surroundings; it is not an arithmetic parser.
func classifyLoose(text string) Op {
	unknown := Op{Kind: KindUnknown, Raw: text}

	if strings.Contains(text, "%") && strings.Contains(text, "256") {
		inner := strings.TrimSpace(strings.SplitN(text, "%", 2)[0])
		if strings.HasPrefix(inner, "(") && strings.HasSuffix(inner, ")") {
			inner = strings.TrimSpace(inner[1 : len(inner)-1])
		}
		switch {
		case strings.Contains(inner, "+") && !strings.Contains(inner, "-"):
			parts := strings.SplitN(inner, "+", 2)
			if strings.TrimSpace(parts[0]) == "n" {
				if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
					return Op{Kind: KindAdd, Arg: v, Raw: text}
				}
			}
		case strings.Contains(inner, "-"):
			parts := strings.SplitN(inner, "-", 2)
			if strings.TrimSpace(parts[0]) == "n" {
				// Covers both (n - D + 256) % 256 and the bare (n - D) % 256;
				// they agree once the result is wrapped into range.
				rest := strings.SplitN(parts[1], "+", 2)[0]
				if v, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
					return Op{Kind: KindSubWrap, Arg: v, Raw: text}
				}
			}
		}
		return unknown
	}

	if strings.Contains(text, "^") {
		parts := strings.SplitN(text, "^", 2)
		if strings.TrimSpace(parts[0]) == "n" {
			if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
				return Op{Kind: KindXor, Arg: v, Raw: text}
			}
		}
	}

	return unknown
}
