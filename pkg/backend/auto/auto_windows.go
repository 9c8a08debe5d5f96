package auto

import (
	_ "github.com/ottogen/keysmith/pkg/backend/windows" // Win32 SendInput
)
