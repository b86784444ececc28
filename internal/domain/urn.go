package domain

// Identity composition for the target metadata graph. Only string assembly
// lives here; the graph's schema is otherwise opaque to this connector.

const (
	EntityTypeCorpUser = "corpuser"
	AspectCorpUserInfo = "corpUserInfo"
	ChangeTypeUpsert   = "UPSERT"
)

// UserURN wraps a corp-user name into the graph's canonical identity scheme.
func UserURN(name string) string {
	return "urn:li:corpuser:" + name
}
