// Package auto registers every injection backend available on the build
// platform. Import it for its side effects:
//
//	import _ "github.com/ottogen/keysmith/pkg/backend/auto"
package auto

import (
	_ "github.com/ottogen/keysmith/pkg/backend/fake" // dry-run backend, selectable by name
)
