package domain

// ApplicationStatus is the lifecycle state of a sitter's application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// ApplicationStatusValues lists every valid status, in validation-message order.
var ApplicationStatusValues = []ApplicationStatus{StatusPending, StatusAccepted, StatusRejected}

// ValidApplicationStatus reports whether s is a known status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	for _, v := range ApplicationStatusValues {
		if s == v {
			return true
		}
	}
	return false
}

// Application is a sitter's bid on a Listing. Always created pending; the only
// mutation is the status update (including the auto-rejection cascade).
type Application struct {
	ID        uint              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ListingID uint              `gorm:"column:listing_id;not null;index" json:"listingId"`
	SitterID  string            `gorm:"column:sitter_id;not null;index" json:"sitterId"`
	Status    ApplicationStatus `gorm:"column:status;type:varchar(20);default:'pending'" json:"status"`

	// Listing is populated only by queries that preload it (by-sitter view).
	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}
