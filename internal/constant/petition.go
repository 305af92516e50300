package constant

type PetitionStatus string

const (
	PetitionStatusDraft     PetitionStatus = "draft"
	PetitionStatusPublished PetitionStatus = "published"
	PetitionStatusPaused    PetitionStatus = "paused"
	PetitionStatusClosed    PetitionStatus = "closed"
)

func (ps PetitionStatus) Valid() bool {
	switch ps {
	case PetitionStatusDraft, PetitionStatusPublished, PetitionStatusPaused, PetitionStatusClosed:
		return true
	}
	return false
}

const DefaultPrimaryColor = "#3B82F6"

// Prefix for the reference code handed to a signer after signing.
const ProtocolPrefix = "PET-"
