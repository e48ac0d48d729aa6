package format

// Builtin layouts for the lock-free sorted list whose links are markable
// references. In C:
//
//	struct _SPCLockFreeListNode {
//	    volatile long  _cmem_refCount_c; // claim flag in bit 0
//	    markable_ptr_t _next_d;          // delete flag in bit 0
//	    long           _key;
//	    void          *_data;
//	};
//
//	struct SPCLockFreeList {
//	    SPCLockFreeListNode          *_head;
//	    SPCLockFreeListNode          *_tail;
//	    SPCLockFreeListNode *volatile _freeList;
//	    void                         *_storage;
//	    size_t                        _size;
//	};
const (
	// LockFreeListNode is the node type markable references point at.
	LockFreeListNode = "_SPCLockFreeListNode"
	// LockFreeListNodeTypedef is the typedef name for LockFreeListNode.
	LockFreeListNodeTypedef = "SPCLockFreeListNode"
	// LockFreeList is the list header holding head, tail and free list.
	LockFreeList = "SPCLockFreeList"
	// MarkableType is the type tag of a markable reference.
	MarkableType = "markable_ptr_t"
	// NextField is the markable link between list nodes.
	NextField = "_next_d"
)

// NewBuiltinRegistry returns NewRegistry(arch) plus the lock-free list layouts.
func NewBuiltinRegistry(arch Arch) *Registry {
	r := NewRegistry(arch)
	if err := RegisterLockFreeList(r); err != nil {
		// The builtin layouts are static; failing here is a programming error.
		panic(err)
	}
	return r
}

// RegisterLockFreeList adds the lock-free list node, its typedef and the list
// header to r.
func RegisterLockFreeList(r *Registry) error {
	if _, err := r.DefineStruct(LockFreeListNode, []Member{
		{Name: "_cmem_refCount_c", Type: "long"},
		{Name: NextField, Type: MarkableType},
		{Name: "_key", Type: "long"},
		{Name: "_data", Type: "void *"},
	}, 0); err != nil {
		return err
	}
	if err := r.Alias(LockFreeListNodeTypedef, LockFreeListNode); err != nil {
		return err
	}
	_, err := r.DefineStruct(LockFreeList, []Member{
		{Name: "_head", Type: LockFreeListNodeTypedef + " *"},
		{Name: "_tail", Type: LockFreeListNodeTypedef + " *"},
		{Name: "_freeList", Type: LockFreeListNodeTypedef + " *"},
		{Name: "_storage", Type: "void *"},
		{Name: "_size", Type: "size_t"},
	}, 0)
	return err
}
