package snowflake

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
)

// epoch is 2020-01-01T00:00:00Z in milliseconds. IDs carry milliseconds since
// this epoch in their high bits, so they sort roughly by creation time.
const epoch = 1577836800000

func init() {
	SetGlobalMachineID(rand.Intn(1023))
}

var globalmachineID struct {
	id  int
	set bool
	sync.RWMutex
}

// ErrGlobalIDBadVal means that the global machine id value wasn't properly set.
var ErrGlobalIDBadVal = errors.New("globalID must be a number between (inclusive) 0 and 1023")

// SetGlobalMachineID sets the global machine id. This number is limited to a number between 0 and 1023 inclusive.
func SetGlobalMachineID(id int) error {
	if id > 1023 || id < 0 {
		return ErrGlobalIDBadVal
	}
	globalmachineID.Lock()
	globalmachineID.id = id
	globalmachineID.set = true
	globalmachineID.Unlock()
	return nil
}

// GlobalMachineID returns the global machine id. This number is limited to a number between 0 and 1023 inclusive.
func GlobalMachineID() int {
	globalmachineID.RLock()
	defer globalmachineID.RUnlock()
	return globalmachineID.id
}

// NewDefaultIDGenerator returns an *IDGenerator that uses the currently set
// global machine ID. If you change the global machine id, it will not change
// the id in any generators that have already been created.
func NewDefaultIDGenerator() *IDGenerator {
	globalmachineID.RLock()
	defer globalmachineID.RUnlock()
	if globalmachineID.set {
		return NewIDGenerator(WithMachineID(globalmachineID.id))
	}
	return NewIDGenerator()
}

// IDGenerator holds the ID generator.
type IDGenerator struct {
	mu        sync.Mutex
	machineID uint64
	lastMS    uint64
	seq       uint64
}

// IDGeneratorOp is an option for an IDGenerator.
type IDGeneratorOp func(*IDGenerator)

// WithMachineID uses the low ten bits of id as the machine id.
func WithMachineID(id int) IDGeneratorOp {
	return func(g *IDGenerator) {
		g.machineID = uint64(id & 1023)
	}
}

// NewIDGenerator returns a new IDGenerator. Optionally you can use an
// IDGeneratorOp to use a specific machine id.
func NewIDGenerator(opts ...IDGeneratorOp) *IDGenerator {
	gen := &IDGenerator{
		machineID: uint64(rand.Intn(1023)),
	}
	for _, f := range opts {
		f(gen)
	}
	return gen
}

// ID returns the next unique id. Layout: 41 bits of milliseconds since the
// epoch, 10 bits of machine id, 12 bits of per-millisecond sequence. The top
// bit stays clear so the id is a positive int64 everywhere.
func (g *IDGenerator) ID() platform.ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := uint64(time.Now().UnixMilli() - epoch)
	if now == g.lastMS {
		g.seq = (g.seq + 1) & 4095
		if g.seq == 0 {
			// sequence rolled over, wait out the millisecond
			for now <= g.lastMS {
				now = uint64(time.Now().UnixMilli() - epoch)
			}
		}
	} else {
		g.seq = 0
	}
	g.lastMS = now

	id := now<<22 | g.machineID<<12 | g.seq
	return platform.ID(id)
}
