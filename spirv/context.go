package spirv

// Context is the module-wide id allocator, grounded on
// clang::spirv::SPIRVContext: result ids are a dense range starting at 1,
// and the final id bound (one past the highest allocated id) becomes the
// SPIR-V header's bound word.
type Context struct {
	nextID uint32
}

// NewContext returns a Context with the first allocatable id set to 1 (id 0
// is reserved by the SPIR-V format to mean "no result").
func NewContext() *Context {
	return &Context{nextID: 1}
}

// TakeID allocates and returns the next unused id.
func (c *Context) TakeID() uint32 {
	id := c.nextID
	c.nextID++
	return id
}

// Bound returns the id bound: one past the highest id allocated so far.
func (c *Context) Bound() uint32 {
	return c.nextID
}
