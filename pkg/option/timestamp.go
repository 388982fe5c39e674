package option

// TimestampPolicy is a closed sum type describing what punzip should
// do with each entry's stored mtime when extracting it. It replaces
// the three-way "absent / current / fixed" choice that the original
// implementation modeled as an overloaded time_t-to-time_t function
// where a return of 0 meant "do not set".
//
// The zero-sentinel contract is preserved at the boundary where a
// policy is turned into a transform (Transform), since the worker
// still needs a plain func(int64) int64 to apply per entry, but
// callers of TimestampPolicy itself never have to reason about the
// sentinel — they pick one of the three constructors below.
type TimestampPolicy interface {
	// Transform returns the function applied to each entry's stored
	// mtime (seconds since epoch). A return of 0 from the resulting
	// function means "leave the filesystem's default timestamp".
	Transform() func(stored int64) int64

	timestampPolicy() // unexported: closes the sum type to this package
}

// Verbatim uses each entry's stored mtime as-is (ignoring timezone,
// per the 2-second ZIP resolution). This is the default when -t is
// not supplied on the command line.
type Verbatim struct{}

func (Verbatim) Transform() func(int64) int64 { return func(t int64) int64 { return t } }
func (Verbatim) timestampPolicy()             {}

// Current means "do not set a timestamp at all", leaving whatever the
// filesystem assigns at creation time. Corresponds to -t current.
type Current struct{}

func (Current) Transform() func(int64) int64 { return func(int64) int64 { return 0 } }
func (Current) timestampPolicy()             {}

// Fixed applies the same epoch-seconds timestamp to every extracted
// file, regardless of what is stored in the archive. Corresponds to
// -t <N> for a positive integer N. Epoch zero cannot be requested
// this way, since it collides with the Current sentinel; this is a
// documented limitation inherited from the original implementation.
type Fixed struct {
	Epoch int64
}

func (f Fixed) Transform() func(int64) int64 { return func(int64) int64 { return f.Epoch } }
func (Fixed) timestampPolicy()               {}
