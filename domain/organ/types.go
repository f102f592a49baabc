package organ

import "github.com/luca-patrignani/organ-ledger/ledger"

// BloodType is an ABO/Rh blood group such as "O-".
type BloodType string

const (
	APos  BloodType = "A+"
	ANeg  BloodType = "A-"
	BPos  BloodType = "B+"
	BNeg  BloodType = "B-"
	ABPos BloodType = "AB+"
	ABNeg BloodType = "AB-"
	OPos  BloodType = "O+"
	ONeg  BloodType = "O-"
)

// BloodTypes lists every accepted blood type.
var BloodTypes = []BloodType{APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg}

// Valid reports whether b is one of BloodTypes.
func (b BloodType) Valid() bool {
	for _, v := range BloodTypes {
		if b == v {
			return true
		}
	}
	return false
}

// MinDonorAge is the youngest age at which a donor may be matched.
const MinDonorAge = 18

// Record is a payload stored in one of the registry ledgers.
type Record interface {
	LedgerName() string
}

// Donor is the payload of the donor ledger.
type Donor struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	BloodType BloodType `json:"blood_type"`
	Hospital  string    `json:"hospital"`
	Used      bool      `json:"used,omitempty"`
}

func (Donor) LedgerName() string { return ledger.Donor }

// Recipient is the payload of the recipient ledger.
type Recipient struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	BloodType    BloodType `json:"blood_type"`
	Urgency      string    `json:"medical_urgency"`
	Transplanted bool      `json:"transplanted,omitempty"`
}

func (Recipient) LedgerName() string { return ledger.Recipient }

// Transplant links snapshots of a matched donor and recipient.
type Transplant struct {
	Donor     Donor     `json:"donor"`
	Recipient Recipient `json:"recipient"`
	Timestamp int64     `json:"timestamp"` // Unix nanoseconds
}

func (Transplant) LedgerName() string { return ledger.Transplant }
