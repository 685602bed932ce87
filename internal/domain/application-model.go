package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ApplicationType string

const (
	TypePassportFirst         ApplicationType = "passport-first"
	TypePassportReplacement   ApplicationType = "passport-replacement"
	TypeNationalIDFirst       ApplicationType = "nationalid-first"
	TypeNationalIDReplacement ApplicationType = "nationalid-replacement"
)

func (t ApplicationType) Valid() bool {
	switch t {
	case TypePassportFirst, TypePassportReplacement, TypeNationalIDFirst, TypeNationalIDReplacement:
		return true
	}
	return false
}

// DisplayName is the human-readable label used in emails and the approval document.
func (t ApplicationType) DisplayName() string {
	switch t {
	case TypePassportFirst:
		return "e-Passport First-Time"
	case TypePassportReplacement:
		return "e-Passport Replacement"
	case TypeNationalIDFirst:
		return "National ID First-Time"
	case TypeNationalIDReplacement:
		return "National ID Replacement"
	}
	return string(t)
}

type ApplicationStatus string

const (
	StatusPending    ApplicationStatus = "pending"
	StatusInProgress ApplicationStatus = "in-progress"
	StatusApproved   ApplicationStatus = "approved"
	StatusRejected   ApplicationStatus = "rejected"
	StatusCollected  ApplicationStatus = "collected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusApproved, StatusRejected, StatusCollected:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodMomo       PaymentMethod = "momo"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodBank       PaymentMethod = "bank"
)

type Application struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	ApplicationType    ApplicationType   `gorm:"type:varchar(30);not null;index" json:"application_type"`
	Status             ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ConfirmationNumber string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"confirmation_number"`

	// --- Personal details ---
	FirstName        string     `gorm:"type:varchar(100);not null" json:"first_name"`
	MiddleName       *string    `gorm:"type:varchar(100)" json:"middle_name,omitempty"`
	LastName         string     `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfBirth      time.Time  `gorm:"type:date;not null" json:"date_of_birth"`
	Gender           string     `gorm:"type:varchar(10);not null" json:"gender"`
	Nationality      string     `gorm:"type:varchar(100);not null" json:"nationality"`
	NationalIDNumber *string    `gorm:"type:varchar(50)" json:"national_id_number,omitempty"`
	FatherName       string     `gorm:"type:varchar(200);not null" json:"father_name"`
	MotherName       string     `gorm:"type:varchar(200);not null" json:"mother_name"`
	MaritalStatus    string     `gorm:"type:varchar(20);not null" json:"marital_status"`
	Profession       *string    `gorm:"type:varchar(100)" json:"profession,omitempty"`

	// --- Contact details ---
	PhoneNumber      string `gorm:"type:varchar(20);not null" json:"phone_number"`
	Email            string `gorm:"type:varchar(255);not null" json:"email"`
	Country          string `gorm:"type:varchar(100);not null" json:"country"`
	State            string `gorm:"type:varchar(100);not null" json:"state"`
	City             string `gorm:"type:varchar(100);not null" json:"city"`
	PlaceOfResidence string `gorm:"type:varchar(200);not null" json:"place_of_residence"`

	// --- Birth location ---
	BirthCountry string `gorm:"type:varchar(100);not null" json:"birth_country"`
	BirthState   string `gorm:"type:varchar(100);not null" json:"birth_state"`
	BirthCity    string `gorm:"type:varchar(100);not null" json:"birth_city"`

	// --- Passport specific ---
	PassportType       *string `gorm:"type:varchar(10)" json:"passport_type,omitempty"`
	TravelPurpose      *string `gorm:"type:varchar(200)" json:"travel_purpose,omitempty"`
	DestinationCountry *string `gorm:"type:varchar(100)" json:"destination_country,omitempty"`
	DestinationCity    *string `gorm:"type:varchar(100)" json:"destination_city,omitempty"`

	// --- Replacement specific ---
	ReplacementReason *string `gorm:"type:varchar(20)" json:"replacement_reason,omitempty"`

	// --- Document attachments (stored-file URLs) ---
	PhotoURL            *string `gorm:"type:text" json:"photo_url,omitempty"`
	IDCopyURL           *string `gorm:"type:text" json:"id_copy_url,omitempty"`
	SignatureURL        *string `gorm:"type:text" json:"signature_url,omitempty"`
	BirthCertificateURL *string `gorm:"type:text" json:"birth_certificate_url,omitempty"`
	OldDocumentURL      *string `gorm:"type:text" json:"old_document_url,omitempty"`
	PoliceReportURL     *string `gorm:"type:text" json:"police_report_url,omitempty"`
	CivilRegistryNumber *string `gorm:"type:varchar(100)" json:"civil_registry_number,omitempty"`

	// --- Payment ---
	PaymentStatus          PaymentStatus    `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod          *PaymentMethod   `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	PaymentAmount          *decimal.Decimal `gorm:"type:numeric(10,2)" json:"payment_amount,omitempty"`
	PaymentReference       *string          `gorm:"type:varchar(100);index" json:"payment_reference,omitempty"`
	PaymentProofURL        *string          `gorm:"type:text" json:"payment_proof_url,omitempty"`
	PaymentProofHash       *string          `gorm:"type:varchar(64);uniqueIndex" json:"payment_proof_hash,omitempty"`
	PaymentDate            *time.Time       `json:"payment_date,omitempty"`
	PaymentVerifiedBy      *uint            `json:"payment_verified_by,omitempty"`
	PaymentVerifiedAt      *time.Time       `json:"payment_verified_at,omitempty"`
	PaymentRejectionReason *string          `gorm:"type:text" json:"payment_rejection_reason,omitempty"`

	// --- Review ---
	ReviewedBy      *uint      `gorm:"index" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	ApprovedPDFURL  *string    `gorm:"type:text" json:"approved_pdf_url,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
