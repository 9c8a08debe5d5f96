package auto

import (
	_ "github.com/ottogen/keysmith/pkg/backend/wayland" // wayland virtual input
	_ "github.com/ottogen/keysmith/pkg/backend/x11"     // X11 XTEST
)
