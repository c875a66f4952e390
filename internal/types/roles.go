package types

// Role vocabularies are closed per entity type: a related user attached to
// an agency may only carry agency roles, and so on. The identifiers mirror
// the backend's role codes.

// Agency roles.
const (
	RoleAgenceAdmin         = "agence_admin"
	RoleAgenceClientManager = "agence_client_manager"
	RoleAgenceOrderExecutor = "agence_order_executor"
	RoleAgenceViewer        = "agence_viewer"
)

// TCC (custodian) roles.
const (
	RoleTCCAdmin     = "tcc_admin"
	RoleTCCSettler   = "tcc_settler"
	RoleTCCValidator = "tcc_validator"
	RoleTCCViewer    = "tcc_viewer"
)

// IOB roles.
const (
	RoleIOBAdmin         = "iob_admin"
	RoleIOBOrderExecutor = "iob_order_executor"
	RoleIOBViewer        = "iob_viewer"
)

// Client roles.
const (
	RoleClientOwner    = "client_owner"
	RoleClientOperator = "client_operator"
)

var roleVocabulary = map[EntityKind][]string{
	KindAgence: {RoleAgenceAdmin, RoleAgenceClientManager, RoleAgenceOrderExecutor, RoleAgenceViewer},
	KindTCC:    {RoleTCCAdmin, RoleTCCSettler, RoleTCCValidator, RoleTCCViewer},
	KindIOB:    {RoleIOBAdmin, RoleIOBOrderExecutor, RoleIOBViewer},
	KindClient: {RoleClientOwner, RoleClientOperator},
}

// RolesFor returns the closed role vocabulary for an entity kind.
func RolesFor(kind EntityKind) []string {
	return roleVocabulary[kind]
}

// RoleAllowed reports whether role belongs to kind's vocabulary.
func RoleAllowed(kind EntityKind, role string) bool {
	for _, r := range roleVocabulary[kind] {
		if r == role {
			return true
		}
	}
	return false
}
