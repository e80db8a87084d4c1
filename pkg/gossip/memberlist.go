package gossip

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/hashicorp/memberlist"
)

// NodeMeta is the generator identity each member advertises.
type NodeMeta struct {
	NodeID      int64 `json:"node_id"`
	NodeBits    int   `json:"node_bits"`
	CustomEpoch int64 `json:"custom_epoch"`
}

// compatible reports whether IDs from both generators share one ID space.
func (m NodeMeta) compatible(o NodeMeta) bool {
	return m.NodeBits == o.NodeBits && m.CustomEpoch == o.CustomEpoch
}

// Conflict is a peer issuing IDs in our ID space with our node ID.
type Conflict struct {
	Member string
	Addr   string
	Meta   NodeMeta
	SeenAt time.Time
}

// Detector gossips generator identity with memberlist and records peers whose node ID
// collides with the local one. It never reassigns node IDs.
type Detector struct {
	list *memberlist.Memberlist
	name string
	meta NodeMeta

	mu        sync.RWMutex
	conflicts map[string]Conflict
}

// Ensure Detector implements Memberlist Delegate
var _ memberlist.Delegate = (*Detector)(nil)
var _ memberlist.EventDelegate = (*Detector)(nil)

// NewDetector starts a memberlist agent bound to bindAddr:bindPort.
func NewDetector(name, bindAddr string, bindPort int, meta NodeMeta) (*Detector, error) {
	config := memberlist.DefaultLANConfig()
	config.Name = name
	config.BindAddr = bindAddr
	config.BindPort = bindPort
	config.AdvertisePort = bindPort

	// Disable logging for now
	config.LogOutput = io.Discard

	d := &Detector{
		name:      name,
		meta:      meta,
		conflicts: make(map[string]Conflict),
	}

	config.Events = d   // Handle join/leave events
	config.Delegate = d // Handle metadata exchange

	list, err := memberlist.Create(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create memberlist: %w", err)
	}
	d.list = list

	return d, nil
}

// Join joins the cluster using seed nodes.
func (d *Detector) Join(seeds []string) error {
	if len(seeds) > 0 {
		_, err := d.list.Join(seeds)
		if err != nil {
			return fmt.Errorf("failed to join cluster: %w", err)
		}
	}
	return nil
}

// Leave leaves the cluster.
func (d *Detector) Leave() error {
	if err := d.list.Leave(time.Second * 5); err != nil {
		return err
	}
	return d.list.Shutdown()
}

// Conflicts returns the peers currently colliding with the local node ID.
func (d *Detector) Conflicts() []Conflict {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Conflict, 0, len(d.conflicts))
	for _, c := range d.conflicts {
		out = append(out, c)
	}
	return out
}

// NumMembers returns the number of known live members, including the local one.
func (d *Detector) NumMembers() int {
	return d.list.NumMembers()
}

// NodeMeta returns the local node metadata.
func (d *Detector) NodeMeta(limit int) []byte {
	data, err := json.Marshal(d.meta)
	if err != nil || len(data) > limit {
		logger.Warnw("failed to encode gossip node meta", "size", len(data), "limit", limit)
		return nil
	}
	return data
}

// NotifyMsg, GetBroadcasts, LocalState, MergeRemoteState are not used here but required by Delegate
func (d *Detector) NotifyMsg([]byte)                           {}
func (d *Detector) GetBroadcasts(overhead, limit int) [][]byte { return nil }
func (d *Detector) LocalState(join bool) []byte                { return nil }
func (d *Detector) MergeRemoteState(buf []byte, join bool)     {}

// NotifyJoin is invoked when a node joins.
func (d *Detector) NotifyJoin(node *memberlist.Node) {
	d.observe(node.Name, node.Address(), node.Meta)
}

// NotifyLeave is invoked when a node leaves.
func (d *Detector) NotifyLeave(node *memberlist.Node) {
	d.mu.Lock()
	_, had := d.conflicts[node.Name]
	delete(d.conflicts, node.Name)
	d.mu.Unlock()

	if had {
		logger.Infow("Conflicting node left", "member", node.Name)
	}
}

// NotifyUpdate is invoked when a node is updated.
func (d *Detector) NotifyUpdate(node *memberlist.Node) {
	d.observe(node.Name, node.Address(), node.Meta)
}

func (d *Detector) observe(member, addr string, raw []byte) {
	if member == d.name {
		return
	}

	meta, ok := decodeMeta(raw)
	if !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !meta.compatible(d.meta) || meta.NodeID != d.meta.NodeID {
		delete(d.conflicts, member)
		return
	}

	if _, known := d.conflicts[member]; !known {
		logger.Errorw("Node ID conflict detected, IDs may collide",
			"member", member, "addr", addr, "node_id", meta.NodeID, "node_bits", meta.NodeBits)
	}
	d.conflicts[member] = Conflict{Member: member, Addr: addr, Meta: meta, SeenAt: time.Now()}
}

func decodeMeta(raw []byte) (NodeMeta, bool) {
	if len(raw) == 0 {
		return NodeMeta{}, false
	}
	var m NodeMeta
	if err := json.Unmarshal(raw, &m); err != nil {
		logger.Warnw("failed to decode node metadata", "error", err.Error())
		return NodeMeta{}, false
	}
	return m, true
}
