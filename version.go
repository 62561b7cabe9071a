package tex

import (
	"fmt"
	"strconv"
	"strings"
)

// ContainerVersion is the image container revision, taken from the
// numeric suffix of the TEXB magic.
type ContainerVersion int32

// Container versions.
const (
	Version1 ContainerVersion = 1
	Version2 ContainerVersion = 2
	Version3 ContainerVersion = 3
	Version4 ContainerVersion = 4
)

const (
	containerMagicPrefix = "TEXB"
	magicMaxLength       = 16
)

// IsValid reports whether v is a known container version.
func (v ContainerVersion) IsValid() bool {
	return v >= Version1 && v <= Version4
}

// Magic returns the container magic for v, e.g. "TEXB0003".
func (v ContainerVersion) Magic() string {
	return fmt.Sprintf("%s%04d", containerMagicPrefix, int32(v))
}

func (v ContainerVersion) String() string {
	return fmt.Sprintf("v%d", int32(v))
}

// parseContainerMagic maps one of the four known container tags to its version.
func parseContainerMagic(magic string) (ContainerVersion, error) {
	switch magic {
	case "TEXB0001", "TEXB0002", "TEXB0003", "TEXB0004":
	default:
		return 0, fmt.Errorf("%w: %q (expected TEXB0001..TEXB0004)", ErrUnknownMagic, magic)
	}

	n, err := strconv.Atoi(strings.TrimPrefix(magic, containerMagicPrefix))
	if err != nil {
		panic(fmt.Sprintf("tex: container magic %q has no numeric suffix", magic))
	}
	v := ContainerVersion(n)
	if !v.IsValid() {
		panic(fmt.Sprintf("tex: container magic %q maps to unknown version %d", magic, n))
	}

	return v, nil
}
