package rights

// Tier identifies one of the four permission levels a convention group
// can be granted on a filesystem object.
type Tier uint8

const (
	// TierRead grants read and execute access (list, read data, traverse).
	TierRead Tier = 1

	// TierWrite grants write access (create files/folders, write data,
	// write attributes) without read.
	TierWrite Tier = 2

	// TierModify grants read, write, execute and delete.
	TierModify Tier = 3

	// TierFullControl grants every file system right, including changing
	// permissions and taking ownership.
	TierFullControl Tier = 4
)

// Fixed NTFS access masks, one per tier. These are the generic file
// access rights combinations Windows itself uses for the matching
// "simple" permission levels.
const (
	// MaskRead is FILE_GENERIC_READ | FILE_GENERIC_EXECUTE
	// ("Read & Execute" in the security dialog).
	MaskRead uint32 = 0x001200A9

	// MaskWrite is FILE_GENERIC_WRITE ("Write").
	MaskWrite uint32 = 0x00100116

	// MaskModify is "Modify": read, write, execute and DELETE.
	MaskModify uint32 = 0x001301BF

	// MaskFullControl is FILE_ALL_ACCESS ("Full Control").
	MaskFullControl uint32 = 0x001F01FF
)

// Tiers lists all tiers in canonical order (the order composite
// operations iterate in).
var Tiers = [4]Tier{TierRead, TierWrite, TierModify, TierFullControl}

// String returns the human-readable tier name.
func (t Tier) String() string {
	switch t {
	case TierRead:
		return "Read"
	case TierWrite:
		return "Write"
	case TierModify:
		return "Modify"
	case TierFullControl:
		return "FullControl"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the tier is a defined value.
func (t Tier) IsValid() bool {
	return t >= TierRead && t <= TierFullControl
}

// Mask returns the fixed access mask for the tier. Returns 0 for an
// invalid tier.
func (t Tier) Mask() uint32 {
	switch t {
	case TierRead:
		return MaskRead
	case TierWrite:
		return MaskWrite
	case TierModify:
		return MaskModify
	case TierFullControl:
		return MaskFullControl
	default:
		return 0
	}
}

// TierFromMask maps an access mask back to a tier. Returns (0, false)
// for masks that are not one of the four fixed combinations.
func TierFromMask(mask uint32) (Tier, bool) {
	switch mask {
	case MaskRead:
		return TierRead, true
	case MaskWrite:
		return TierWrite, true
	case MaskModify:
		return TierModify, true
	case MaskFullControl:
		return TierFullControl, true
	default:
		return 0, false
	}
}
