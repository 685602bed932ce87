package dto

type SubmitApplicationRequest struct {
	ApplicationType string `json:"application_type"`

	FirstName        string  `json:"first_name"`
	MiddleName       *string `json:"middle_name,omitempty"`
	LastName         string  `json:"last_name"`
	DateOfBirth      string  `json:"date_of_birth"` // YYYY-MM-DD
	Gender           string  `json:"gender"`
	Nationality      string  `json:"nationality"`
	NationalIDNumber *string `json:"national_id_number,omitempty"`
	FatherName       string  `json:"father_name"`
	MotherName       string  `json:"mother_name"`
	MaritalStatus    string  `json:"marital_status"`
	Profession       *string `json:"profession,omitempty"`

	PhoneNumber      string `json:"phone_number"`
	Email            string `json:"email"`
	Country          string `json:"country"`
	State            string `json:"state"`
	City             string `json:"city"`
	PlaceOfResidence string `json:"place_of_residence"`

	BirthCountry string `json:"birth_country"`
	BirthState   string `json:"birth_state"`
	BirthCity    string `json:"birth_city"`

	PassportType       *string `json:"passport_type,omitempty"`
	TravelPurpose      *string `json:"travel_purpose,omitempty"`
	DestinationCountry *string `json:"destination_country,omitempty"`
	DestinationCity    *string `json:"destination_city,omitempty"`
	ReplacementReason  *string `json:"replacement_reason,omitempty"`

	PhotoURL            *string `json:"photo_url,omitempty"`
	IDCopyURL           *string `json:"id_copy_url,omitempty"`
	SignatureURL        *string `json:"signature_url,omitempty"`
	BirthCertificateURL *string `json:"birth_certificate_url,omitempty"`
	OldDocumentURL      *string `json:"old_document_url,omitempty"`
	PoliceReportURL     *string `json:"police_report_url,omitempty"`
	CivilRegistryNumber *string `json:"civil_registry_number,omitempty"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type StatisticsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	ByType   map[string]int64 `json:"by_type"`
}

type InitializePaymentRequest struct {
	ApplicationID uint   `json:"application_id"`
	CallbackURL   string `json:"callback_url"`
}

type InitializePaymentResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}
