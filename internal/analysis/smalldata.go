package analysis

import (
	"log/slog"

	"dolasm/internal/dolx"
	"dolasm/internal/ppc"
)

// Small data anchors of the EABI: r13 addresses .sdata/.sbss and r2 addresses .sdata2/.sbss2.
const (
	SmallDataReg  ppc.Register = 13
	SmallData2Reg ppc.Register = 2
)

// smallDataSearchFunctions bounds how far from the entry point the register
// initialization is searched for. The startup code sets both anchors in a
// routine called directly from the entry function.
const smallDataSearchFunctions = 8

// FindSmallDataBases looks for the lis/ori (or lis/addi) pairs that load r2
// and r13 in the startup code reachable from the entry point. Missing
// anchors are simply absent from the result.
func FindSmallDataBases(img *dolx.Image, opts Options) map[ppc.Register]uint32 {
	bases := make(map[ppc.Register]uint32)
	res, err := Trace(img, img.Header.EntryPoint, TraceOptions{Options: opts, MaxFunctions: smallDataSearchFunctions})
	if err != nil {
		slog.Debug("small data search failed", "err", err)
		return bases
	}

	for _, fn := range res.Functions {
		high := make(map[ppc.Register]uint32)
		for _, inst := range fn.Insts {
			switch o := inst.Op.(type) {
			case ppc.Addis:
				if o.Source == 0 {
					high[o.Dest] = uint32(o.Imm) << 16
				}
			case ppc.Ori:
				if hi, ok := high[o.Source]; ok && isAnchor(o.Dest) {
					bases[o.Dest] = hi | uint32(o.Imm)
				}
			case ppc.Addi:
				if hi, ok := high[o.Source]; ok && o.Source != 0 && isAnchor(o.Dest) {
					bases[o.Dest] = hi + uint32(o.Imm)
				}
			}
		}
		if len(bases) == 2 {
			break
		}
	}
	for r, v := range bases {
		slog.Debug("small data anchor", "reg", int(r), "value", hex32(v))
	}
	return bases
}

func isAnchor(r ppc.Register) bool { return r == SmallDataReg || r == SmallData2Reg }
