package validation

import "finnadmin/internal/types"

// Field names shared by the primary-entity sub-forms. These are the form
// names; the gateway maps them to wire names when building payloads.
const (
	FieldCode          = "code"
	FieldLabel         = "label"
	FieldAddress       = "address"
	FieldCodeSwift     = "code_swift"
	FieldDirectorName  = "director_name"
	FieldDirectorEmail = "director_email"
	FieldDirectorPhone = "director_phone"
	FieldFinancialInst = "financialInstitutionId"
	FieldStatus        = "status"
)

// ForEntity returns the primary-entity schema for a wizard kind.
func ForEntity(kind types.EntityKind) Schema {
	switch kind {
	case types.KindAgence:
		return agenceSchema
	case types.KindTCC:
		return tccSchema
	case types.KindClient:
		return clientSchema
	case types.KindIOB:
		return iobSchema
	}
	return Schema{Entity: string(kind)}
}

var agenceSchema = Schema{
	Entity: "agence",
	Rules: []Rule{
		{Field: FieldCode, Label: "Code", Required: true, MinLen: 2, MaxLen: 16},
		{Field: FieldAddress, Label: "Address", Required: true},
		{Field: FieldCodeSwift, Label: "SWIFT code", Required: true, MinLen: 6, MaxLen: 11},
		{Field: FieldDirectorName, Label: "Director name", Required: true},
		{Field: FieldDirectorEmail, Label: "Director email", Kind: Email, Required: true},
		{Field: FieldDirectorPhone, Label: "Director phone", Kind: Phone, Required: true},
		{Field: FieldFinancialInst, Label: "Financial institution", Required: true},
		{Field: FieldStatus, Label: "Status", Kind: OneOf, Choices: []string{"active", "inactive"}},
	},
}

var tccSchema = Schema{
	Entity: "tcc",
	Rules: []Rule{
		{Field: FieldCode, Label: "Code", Required: true, MinLen: 2, MaxLen: 16},
		{Field: FieldLabel, Label: "Label", Required: true},
		{Field: FieldAddress, Label: "Address", Required: true},
		{Field: FieldCodeSwift, Label: "SWIFT code", Required: true, MinLen: 6, MaxLen: 11},
		{Field: FieldDirectorName, Label: "Director name", Required: true},
		{Field: FieldDirectorEmail, Label: "Director email", Kind: Email, Required: true},
		{Field: FieldDirectorPhone, Label: "Director phone", Kind: Phone, Required: true},
		{Field: FieldFinancialInst, Label: "Financial institution", Required: true},
		{Field: FieldStatus, Label: "Status", Kind: OneOf, Choices: []string{"active", "inactive"}},
	},
}

var clientSchema = Schema{
	Entity: "client",
	Rules: []Rule{
		{Field: FieldCode, Label: "Code", Required: true},
		{Field: FieldLabel, Label: "Name", Required: true},
		{Field: FieldAddress, Label: "Address", Required: true},
		{Field: FieldDirectorEmail, Label: "Contact email", Kind: Email, Required: true},
		{Field: FieldDirectorPhone, Label: "Contact phone", Kind: Phone},
		{Field: FieldFinancialInst, Label: "Financial institution", Required: true},
		{Field: FieldStatus, Label: "Status", Kind: OneOf, Choices: []string{"active", "inactive"}},
	},
}

var iobSchema = Schema{
	Entity: "iob",
	Rules: []Rule{
		{Field: FieldCode, Label: "Code", Required: true, MinLen: 2, MaxLen: 16},
		{Field: FieldLabel, Label: "Label", Required: true},
		{Field: FieldAddress, Label: "Address", Required: true},
		{Field: FieldDirectorName, Label: "Director name", Required: true},
		{Field: FieldDirectorEmail, Label: "Director email", Kind: Email, Required: true},
		{Field: FieldDirectorPhone, Label: "Director phone", Kind: Phone, Required: true},
		{Field: FieldFinancialInst, Label: "Financial institution", Required: true},
		{Field: FieldStatus, Label: "Status", Kind: OneOf, Choices: []string{"active", "inactive"}},
	},
}

// User field names for the related-user dialog.
const (
	UserFieldFullName     = "fullname"
	UserFieldEmail        = "email"
	UserFieldPassword     = "password"
	UserFieldPhone        = "phone"
	UserFieldPosition     = "position"
	UserFieldOrganization = "organization"
	UserFieldStatus       = "status"
)

// ForUser returns the related-user schema for an entity kind. The role
// vocabulary check lives in the provisioning layer because roles are a
// list, not a single form value.
func ForUser(kind types.EntityKind) Schema {
	return Schema{
		Entity: string(kind) + "_user",
		Rules: []Rule{
			{Field: UserFieldFullName, Label: "Full name", Required: true},
			{Field: UserFieldEmail, Label: "Email", Kind: Email, Required: true},
			{Field: UserFieldPassword, Label: "Password", MinLen: 8},
			{Field: UserFieldPhone, Label: "Phone", Kind: Phone},
			{Field: UserFieldPosition, Label: "Position"},
			{Field: UserFieldOrganization, Label: "Organization"},
			{Field: UserFieldStatus, Label: "Status", Kind: OneOf,
				Choices: []string{string(types.UserActive), string(types.UserInactive), string(types.UserPending)}},
		},
	}
}
