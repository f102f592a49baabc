package organ

import (
	"math"

	"github.com/luca-patrignani/organ-ledger/ledger"
)

// BlockSource is anything that exposes a chain of blocks, oldest first.
type BlockSource interface {
	Blocks() []ledger.Block
}

// Match is a donor selected for a recipient.
type Match struct {
	Donor Donor
	Block int // index of the donor block that was selected
}

// FindMatch returns the first eligible donor for recipient in chain order.
//
// A block is a candidate when it decodes to a donor record, carries no "used"
// flag and its donor ID has not been superseded by a later used copy. A
// candidate qualifies when its blood type equals the recipient's and its age is
// at least MinDonorAge. Blocks that are not donor records are skipped.
func FindMatch(recipient Recipient, source BlockSource) (Match, bool) {
	blocks := source.Blocks()

	var donors []Match
	used := make(map[string]bool)
	for _, b := range blocks {
		d, ok := decodeDonor(b)
		if !ok {
			continue
		}
		if d.Used {
			if d.ID != "" {
				used[d.ID] = true
			}
			continue
		}
		donors = append(donors, Match{Donor: d, Block: b.Index})
	}

	for _, m := range donors {
		if m.Donor.ID != "" && used[m.Donor.ID] {
			continue
		}
		if m.Donor.BloodType != recipient.BloodType {
			continue
		}
		if m.Donor.Age < MinDonorAge {
			continue
		}
		return m, true
	}
	return Match{}, false
}

// donorPayload is the loose shape of a donor block. Used and age are read the
// way a hand written payload may carry them: any truthy used value marks the
// donor as used, and a numeric age may be fractional.
type donorPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       any       `json:"age"`
	BloodType BloodType `json:"blood_type"`
	Hospital  string    `json:"hospital"`
	Used      any       `json:"used"`
}

func decodeDonor(b ledger.Block) (Donor, bool) {
	if b.IsGenesis() {
		return Donor{}, false
	}
	var p donorPayload
	if err := b.Decode(&p); err != nil {
		return Donor{}, false
	}
	if p.Name == "" || p.BloodType == "" {
		return Donor{}, false
	}
	return Donor{
		ID:        p.ID,
		Name:      p.Name,
		Age:       wholeYears(p.Age),
		BloodType: p.BloodType,
		Hospital:  p.Hospital,
		Used:      truthy(p.Used),
	}, true
}

// wholeYears truncates a numeric age down to completed years. Anything that is
// not a number counts as 0.
func wholeYears(v any) int {
	f, ok := v.(float64)
	if !ok || f < 0 {
		return 0
	}
	return int(math.Floor(f))
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	return true
}
