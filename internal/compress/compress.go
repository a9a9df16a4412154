package compress

// Compress encodes note content before it reaches the store and decodes
// it on the way out.
type Compress interface {
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}
