package bind_group_provider

// BufferWrite is a pending upload of Data into the buffer bound at Binding on Provider,
// starting Offset bytes in.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
