package asm

// SymbolTable tracks label definitions discovered during the forward
// pass and the branch/jump operands still waiting on one, keyed by the
// address of their first (or only) patched byte.
type SymbolTable struct {
	Labels          map[string]uint16
	PendingBranches map[uint16]string
}

// NewSymbolTable returns an empty table ready for a fresh assembly.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Labels:          make(map[string]uint16),
		PendingBranches: make(map[uint16]string),
	}
}

// Define records a label's address. A later definition silently
// overwrites an earlier one, matching the source's single forward pass.
func (st *SymbolTable) Define(name string, address uint16) {
	st.Labels[name] = address
}

// Reference records that the byte(s) at patchAddr still need the
// resolved address or offset of name written into them.
func (st *SymbolTable) Reference(patchAddr uint16, name string) {
	st.PendingBranches[patchAddr] = name
}
