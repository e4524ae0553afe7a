package capacity

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
)

// ErrUnknownLimit is returned by HostMemory when no memory limit can be found.
var ErrUnknownLimit = errors.New("no memory limit found")

// MemoryStats is a snapshot of the memory available to the process.
type MemoryStats struct {
	Total int64 // Bytes the process may use in total
	Used  int64 // Bytes currently obtained by the process
}

// MemoryReader queries current memory availability.
type MemoryReader interface {
	ReadMemory() (MemoryStats, error)
}

// StaticMemory reports fixed values. Used for tests and simulated scarcity.
type StaticMemory struct {
	Stats MemoryStats
	Err   error
}

// ReadMemory returns the configured stats and error.
func (s StaticMemory) ReadMemory() (MemoryStats, error) {
	return s.Stats, s.Err
}

// HostMemory reads memory limits from the Go runtime and the host.
//
// Total is resolved in order: Limit, GOMEMLIMIT, cgroup v2 memory.max,
// cgroup v1 memory.limit_in_bytes, /proc/meminfo MemTotal. When none are
// available ReadMemory fails with ErrUnknownLimit; set Limit on hosts without
// cgroups or procfs. Used is runtime.MemStats.Sys.
type HostMemory struct {
	// Limit overrides every other source when positive.
	Limit int64

	// Root is prepended to the cgroup and procfs paths.
	Root string
}

var (
	cgroupV2Path = "/sys/fs/cgroup/memory.max"
	cgroupV1Path = "/sys/fs/cgroup/memory/memory.limit_in_bytes"
	meminfoPath  = "/proc/meminfo"
)

// cgroup v1 reports "no limit" as a huge page-aligned number.
const cgroupV1Unlimited = int64(1) << 62

// ReadMemory resolves the total limit and samples the runtime's current usage.
func (h HostMemory) ReadMemory() (MemoryStats, error) {
	total, ok := h.total()
	if !ok {
		return MemoryStats{}, ErrUnknownLimit
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return MemoryStats{
		Total: total,
		Used:  int64(ms.Sys),
	}, nil
}

func (h HostMemory) total() (int64, bool) {
	if h.Limit > 0 {
		return h.Limit, true
	}
	// A negative input only reads the current limit.
	if lim := debug.SetMemoryLimit(-1); lim > 0 && lim < math.MaxInt64 {
		return lim, true
	}
	if lim, ok := h.cgroupLimit(); ok {
		return lim, true
	}
	return h.memTotal()
}

func (h HostMemory) cgroupLimit() (int64, bool) {
	if data, err := os.ReadFile(h.Root + cgroupV2Path); err == nil {
		s := strings.TrimSpace(string(data))
		if s == "max" {
			return 0, false
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
			return v, true
		}
	}
	if data, err := os.ReadFile(h.Root + cgroupV1Path); err == nil {
		v, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
		if err == nil && v > 0 && v < cgroupV1Unlimited {
			return v, true
		}
	}
	return 0, false
}

func (h HostMemory) memTotal() (int64, bool) {
	data, err := os.ReadFile(h.Root + meminfoPath)
	if err != nil {
		return 0, false
	}
	v, err := parseMemTotal(data)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseMemTotal extracts MemTotal from /proc/meminfo content, in bytes.
func parseMemTotal(data []byte) (int64, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] != "MemTotal:" {
			continue
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing MemTotal: %w", err)
		}
		return kb * 1024, nil
	}
	return 0, fmt.Errorf("MemTotal not found")
}
