package tables

import (
	"strconv"

	"git.unix.lgbt/diamondburned/hillchart"
	"github.com/google/uuid"
)

// identityNamespace namespaces all row identities.
var identityNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("hillchart:row"))

// RowIdentities returns an identity function deriving a stable name-based UUID
// from the source name and the row index. The same source and row always get
// the same identity.
func RowIdentities(source string) hillchart.IdentityFunc {
	space := uuid.NewSHA1(identityNamespace, []byte(source))

	return func(row int) hillchart.Identity {
		id := uuid.NewSHA1(space, []byte(strconv.Itoa(row)))
		return hillchart.Identity(id.String())
	}
}
