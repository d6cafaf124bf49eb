package matchfile

import (
	"regexp"
	"sort"
	"strconv"
)

const timeSignatureAttribute = "timeSignature"

var timeSignaturePattern = regexp.MustCompile(`([0-9]+)/([0-9]*)`)

type Meter struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

// TimeSignature is a meter in effect from Onset (in beats) on.
type TimeSignature struct {
	Onset float64 `json:"onset"`
	Meter Meter   `json:"meter"`
}

// parseMeter reads the first "n/d" in s. An empty denominator does not count.
func parseMeter(s string) (Meter, bool) {
	m := timeSignaturePattern.FindStringSubmatch(s)
	if m == nil {
		return Meter{}, false
	}
	num, err := strconv.Atoi(m[1])
	if err != nil {
		return Meter{}, false
	}
	den, err := strconv.Atoi(m[2])
	if err != nil {
		return Meter{}, false
	}
	return Meter{Numerator: num, Denominator: den}, true
}

// TimeSignatures merges the timeSignature info line, placed at the first
// score onset, with every timeSignature meta line. Duplicates are dropped and
// the result is ordered by onset.
func (d *Document) TimeSignatures() []TimeSignature {
	d.tsOnce.Do(func() {
		var res []TimeSignature
		if v, ok := d.Info(timeSignatureAttribute); ok {
			onset, hasOnset := d.FirstOnset()
			if m, ok := parseMeter(v.String()); ok && hasOnset {
				res = append(res, TimeSignature{Onset: onset, Meter: m})
			}
		}
		for _, me := range d.MetaEntries(timeSignatureAttribute) {
			onset, ok := me.TimeInBeats.Number()
			if !ok {
				continue
			}
			if m, ok := parseMeter(me.Value); ok {
				res = append(res, TimeSignature{Onset: onset, Meter: m})
			}
		}

		seen := make(map[TimeSignature]bool)
		uniq := res[:0]
		for _, ts := range res {
			if !seen[ts] {
				seen[ts] = true
				uniq = append(uniq, ts)
			}
		}
		sort.SliceStable(uniq, func(i, j int) bool {
			return uniq[i].Onset < uniq[j].Onset
		})
		d.timeSignatures = uniq
	})
	return d.timeSignatures
}
