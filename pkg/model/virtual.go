package model

// NewVirtualField declares a storage-less field. Reads always start from the
// static default value and apply the getter chain; writes run the loads
// converter and setter chain but discard the result, which makes virtual
// fields useful as computed pass-throughs whose setters update other fields
// on the owning instance. DirectGet and DirectSet fail with
// ErrUnsupportedOperation since there is no real value to access.
func NewVirtualField(name string) *Field {
	f := NewField(name)
	f.virtual = true
	return f
}
