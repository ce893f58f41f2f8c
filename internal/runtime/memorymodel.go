// Package runtime carries the plain Go data a scheduler consumes once
// semantic analysis and composition analysis both report clean: stack
// frame layouts for callable bodies, and a flattened view of the
// composition graph keyed by instance. It holds no scheduling logic of
// its own, mirroring original_source's separation between the front
// end's analysis passes and its VM, which this repository does not
// implement.
package runtime

import (
	"rc/internal/symbols"
	"rc/internal/types"
)

// ParamSlot is one parameter or local variable's position within a
// frame.
type ParamSlot struct {
	Name   string
	Symbol symbols.SymbolID
	Offset uint32
	Size   uint32
}

// MemoryModel is spec §4.5's sub-pass 3 output for a single callable: the
// total size of its argument block and its local-variable block, and
// where its receiver (if any) lands, following original_source's
// stack-frame layout (`arguments_size`, `locals_size`, `receiver_offset`).
type MemoryModel struct {
	ArgumentsSize  uint32
	LocalsSize     uint32
	ReceiverOffset uint32
	HasReceiver    bool
	Params         []ParamSlot
	Locals         []ParamSlot
}

// BuildMemoryModel walks every symbol a callable's body declared, in
// declaration order (table.WalkFrame(frame)), laying parameters out
// first and local variables after, each aligned to its type's natural
// alignment via internal/types.AlignOf. When recv is present it always
// occupies offset 0, ahead of every declared parameter — the receiver is
// always the smallest-offset slot in the frame (spec.md's "the receiver
// parameter's offset is the smallest among all parameter offsets").
func BuildMemoryModel(in *types.Interner, table *symbols.Table, frame symbols.FrameRange, recv types.TypeID) MemoryModel {
	m := MemoryModel{}

	offset := uint32(0)
	if recv != types.NoTypeID {
		m.HasReceiver = true
		m.ReceiverOffset = 0
		offset = types.SizeOf(in, recv)
	}

	ids := table.WalkFrame(frame)
	for _, id := range ids {
		sym := table.SymbolAt(id)
		if sym.Kind != symbols.KindParameter {
			continue
		}
		align := types.AlignOf(in, sym.Type)
		offset = alignUp(offset, align)
		size := types.SizeOf(in, sym.Type)
		m.Params = append(m.Params, ParamSlot{Symbol: id, Offset: offset, Size: size})
		offset += size
	}
	m.ArgumentsSize = offset

	localOffset := uint32(0)
	for _, id := range ids {
		sym := table.SymbolAt(id)
		if sym.Kind != symbols.KindVariable {
			continue
		}
		align := types.AlignOf(in, sym.Type)
		localOffset = alignUp(localOffset, align)
		size := types.SizeOf(in, sym.Type)
		m.Locals = append(m.Locals, ParamSlot{Symbol: id, Offset: localOffset, Size: size})
		localOffset += size
	}
	m.LocalsSize = localOffset

	return m
}

func alignUp(n, align uint32) uint32 {
	if align <= 1 {
		return n
	}
	if rem := n % align; rem != 0 {
		return n + (align - rem)
	}
	return n
}

// BuildMemoryModels computes a MemoryModel for every frame range a
// semantic-analysis Result recorded, keyed the same way
// sema.Result.AccessSummaries is: by the declaration's DeclID.
func BuildMemoryModels(in *types.Interner, table *symbols.Table, frames map[types.DeclID]symbols.FrameRange, receivers map[types.DeclID]types.TypeID) map[types.DeclID]MemoryModel {
	out := make(map[types.DeclID]MemoryModel, len(frames))
	for decl, frame := range frames {
		recv := types.NoTypeID
		if receivers != nil {
			recv = receivers[decl]
		}
		out[decl] = BuildMemoryModel(in, table, frame, recv)
	}
	return out
}
