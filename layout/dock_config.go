package layout

import (
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// AreaConfig is a *TabAreaConfig or a *SplitAreaConfig.
type AreaConfig interface {
	isAreaConfig()
}

// TabAreaConfig is a saved tab area. CurrentIndex is -1 when no tab is
// selected.
type TabAreaConfig struct {
	Widgets      []Widget
	CurrentIndex int
}

// SplitAreaConfig is a saved split area. Sizes are relative weights, one per
// child; they need not sum to one.
type SplitAreaConfig struct {
	Orientation Orientation
	Children    []AreaConfig
	Sizes       []float64
}

func (*TabAreaConfig) isAreaConfig()   {}
func (*SplitAreaConfig) isAreaConfig() {}

// RootConfig is a saved dock layout. A nil Main is an empty layout.
type RootConfig struct {
	Main AreaConfig
}

// SaveLayout snapshots the tree. Split sizes are normalized to sum to one.
func (d *DockLayout) SaveLayout() RootConfig {
	if d.root == noNode {
		return RootConfig{}
	}
	d.holdAllSizes(d.root)
	return RootConfig{Main: d.createConfig(d.root)}
}

func (d *DockLayout) createConfig(id nodeID) AreaConfig {
	n := d.at(id)
	switch n.kind {
	case tabArea:
		cfg := &TabAreaConfig{CurrentIndex: n.tabBar.CurrentIndex()}
		for _, t := range n.tabBar.titles {
			cfg.Widgets = append(cfg.Widgets, t.Owner)
		}
		return cfg
	case splitArea:
		cfg := &SplitAreaConfig{Orientation: n.orientation}
		hints := make([]float64, len(n.sizers))
		for i, c := range n.children {
			cfg.Children = append(cfg.Children, d.createConfig(c))
			hints[i] = n.sizers[i].SizeHint
		}
		cfg.Sizes = normalized(hints)
		return cfg
	default:
		panic(fmt.Sprintf("layout: invalid node kind %d", n.kind))
	}
}

// RestoreLayout replaces the tree with cfg. Each widget is docked at most
// once, at its first occurrence. Splits nested in a split of the same
// orientation are flattened and areas left empty are dropped. Widgets that
// were docked but are absent from cfg are undocked.
func (d *DockLayout) RestoreLayout(cfg RootConfig) {
	var (
		seen  = make(map[Widget]bool)
		order []Widget
		main  AreaConfig
	)
	if cfg.Main != nil {
		main = normalizeAreaConfig(cfg.Main, seen, &order)
	}

	var old []Widget
	for w := range d.Widgets() {
		old = append(old, w)
	}
	for bar := range d.TabBars() {
		delete(d.items, bar)
	}
	d.reset()
	for _, w := range old {
		if !seen[w] {
			delete(d.items, w)
			d.host.Detach(w)
		}
	}
	for _, w := range order {
		d.attach(w)
	}
	if main != nil {
		d.root = d.realize(main)
	}

	d.logger.Debug("restore layout",
		zap.Int("widgets", len(order)),
		zap.Int("dropped", len(old)-countKept(old, seen)))
	d.host.RequestFit()
}

func countKept(ws []Widget, seen map[Widget]bool) int {
	n := 0
	for _, w := range ws {
		if seen[w] {
			n++
		}
	}
	return n
}

func normalizeAreaConfig(cfg AreaConfig, seen map[Widget]bool, order *[]Widget) AreaConfig {
	switch c := cfg.(type) {
	case *TabAreaConfig:
		return normalizeTabAreaConfig(c, seen, order)
	case *SplitAreaConfig:
		return normalizeSplitAreaConfig(c, seen, order)
	default:
		panic(fmt.Sprintf("layout: invalid area config %T", cfg))
	}
}

func normalizeTabAreaConfig(cfg *TabAreaConfig, seen map[Widget]bool, order *[]Widget) AreaConfig {
	if cfg == nil {
		return nil
	}
	var widgets []Widget
	for _, w := range cfg.Widgets {
		if w == nil || seen[w] {
			continue
		}
		seen[w] = true
		*order = append(*order, w)
		widgets = append(widgets, w)
	}
	if len(widgets) == 0 {
		return nil
	}
	index := cfg.CurrentIndex
	if index != -1 && (index < 0 || index >= len(widgets)) {
		index = 0
	}
	return &TabAreaConfig{Widgets: widgets, CurrentIndex: index}
}

func normalizeSplitAreaConfig(cfg *SplitAreaConfig, seen map[Widget]bool, order *[]Widget) AreaConfig {
	if cfg == nil {
		return nil
	}
	cfg.Orientation.mustValid()
	out := &SplitAreaConfig{Orientation: cfg.Orientation}
	for i, child := range cfg.Children {
		if child == nil {
			continue
		}
		nc := normalizeAreaConfig(child, seen, order)
		if nc == nil {
			continue
		}
		weight := 0.0
		if i < len(cfg.Sizes) && !math.IsNaN(cfg.Sizes[i]) {
			weight = math.Abs(cfg.Sizes[i])
		}
		split, ok := nc.(*SplitAreaConfig)
		if !ok || split.Orientation != cfg.Orientation {
			out.Children = append(out.Children, nc)
			out.Sizes = append(out.Sizes, weight)
			continue
		}
		// Same orientation: hoist the grandchildren, sharing this child's
		// weight in their own proportions.
		for k, gw := range normalized(split.Sizes) {
			out.Children = append(out.Children, split.Children[k])
			out.Sizes = append(out.Sizes, gw*weight)
		}
	}
	switch len(out.Children) {
	case 0:
		return nil
	case 1:
		return out.Children[0]
	default:
		return out
	}
}

// realize builds nodes for a normalized config and returns the subtree root.
func (d *DockLayout) realize(cfg AreaConfig) nodeID {
	switch c := cfg.(type) {
	case *TabAreaConfig:
		bar := d.renderer.CreateTabBar()
		for _, w := range c.Widgets {
			bar.AddTab(w.Title())
		}
		bar.SetCurrentIndex(c.CurrentIndex)
		return d.newTabNode(bar)
	case *SplitAreaConfig:
		id := d.newSplitNode(c.Orientation)
		for i, child := range c.Children {
			cid := d.realize(child)
			d.insertChild(id, i, cid, NewSizer(c.Sizes[i]), d.createHandle(c.Orientation))
		}
		n := d.at(id)
		n.syncHandles()
		n.normalizeSizes()
		return id
	default:
		panic(fmt.Sprintf("layout: invalid area config %T", cfg))
	}
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	tabAreaType   = "tab-area"
	splitAreaType = "split-area"
)

type areaJSON struct {
	Type         string      `json:"type"`
	Widgets      []string    `json:"widgets,omitempty"`
	CurrentIndex *int        `json:"currentIndex,omitempty"`
	Orientation  string      `json:"orientation,omitempty"`
	Children     []*areaJSON `json:"children,omitempty"`
	Sizes        []float64   `json:"sizes,omitempty"`
}

type rootJSON struct {
	Main *areaJSON `json:"main"`
}

// Codec converts layout configs to and from JSON. Widgets are written as the
// string ID returns and read back through Resolve.
type Codec struct {
	ID      func(Widget) string
	Resolve func(id string) (Widget, bool)

	// Strict makes unknown widget ids an error instead of being skipped.
	Strict bool
	Logger *zap.Logger
}

// Marshal encodes cfg.
func (c Codec) Marshal(cfg RootConfig) ([]byte, error) {
	root := rootJSON{}
	if cfg.Main != nil {
		root.Main = c.encode(cfg.Main)
	}
	b, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	return b, nil
}

func (c Codec) encode(cfg AreaConfig) *areaJSON {
	switch a := cfg.(type) {
	case *TabAreaConfig:
		index := a.CurrentIndex
		out := &areaJSON{Type: tabAreaType, CurrentIndex: &index, Widgets: []string{}}
		for _, w := range a.Widgets {
			out.Widgets = append(out.Widgets, c.ID(w))
		}
		return out
	case *SplitAreaConfig:
		a.Orientation.mustValid()
		out := &areaJSON{Type: splitAreaType, Orientation: a.Orientation.String(), Sizes: a.Sizes}
		for _, child := range a.Children {
			out.Children = append(out.Children, c.encode(child))
		}
		return out
	default:
		panic(fmt.Sprintf("layout: invalid area config %T", cfg))
	}
}

// Unmarshal decodes a layout written by Marshal. The result still needs
// RestoreLayout to take effect, which also normalizes it.
func (c Codec) Unmarshal(b []byte) (RootConfig, error) {
	var root rootJSON
	if err := json.Unmarshal(b, &root); err != nil {
		return RootConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if root.Main == nil {
		return RootConfig{}, nil
	}
	main, err := c.decode(root.Main)
	if err != nil {
		return RootConfig{}, err
	}
	return RootConfig{Main: main}, nil
}

func (c Codec) decode(a *areaJSON) (AreaConfig, error) {
	switch a.Type {
	case tabAreaType:
		cfg := &TabAreaConfig{CurrentIndex: -1}
		if a.CurrentIndex != nil {
			cfg.CurrentIndex = *a.CurrentIndex
		}
		for _, id := range a.Widgets {
			w, ok := c.Resolve(id)
			if ok {
				cfg.Widgets = append(cfg.Widgets, w)
				continue
			}
			if c.Strict {
				return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, id)
			}
			if c.Logger != nil {
				c.Logger.Warn("skip unknown widget in layout", zap.String("id", id))
			}
		}
		return cfg, nil
	case splitAreaType:
		cfg := &SplitAreaConfig{Sizes: a.Sizes}
		if err := cfg.Orientation.UnmarshalText([]byte(a.Orientation)); err != nil {
			return nil, err
		}
		for _, child := range a.Children {
			if child == nil {
				cfg.Children = append(cfg.Children, nil)
				continue
			}
			cc, err := c.decode(child)
			if err != nil {
				return nil, err
			}
			cfg.Children = append(cfg.Children, cc)
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("%w: area type %q", ErrInvalidConfig, a.Type)
	}
}
