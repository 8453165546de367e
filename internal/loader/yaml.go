package loader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"ductnoise/internal/acoustic"
	"ductnoise/internal/domain"
	"ductnoise/internal/octave"

	"gopkg.in/yaml.v3"
)

// ErrUnknownKind is returned for an element kind the loader cannot build
var ErrUnknownKind = errors.New("unknown element kind")

// NetworkYAML represents the YAML file structure
type NetworkYAML struct {
	Version     string        `yaml:"version"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Defaults    *DefaultsYAML `yaml:"defaults,omitempty"`
	Elements    []ElementYAML `yaml:"elements"`
	Links       []LinkYAML    `yaml:"links,omitempty"`
}

// DefaultsYAML holds values applied to every room that leaves them unset
type DefaultsYAML struct {
	Temperature *float64 `yaml:"temperature,omitempty"`
	Humidity    *float64 `yaml:"humidity,omitempty"`
}

// ElementYAML is one element. Fields not used by the element's kind are
// ignored.
type ElementYAML struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`

	Section *domain.CrossSection `yaml:"section,omitempty"`
	AirFlow int                  `yaml:"air_flow,omitempty"`

	// duct, silencer
	Length float64 `yaml:"length,omitempty"`
	Liner  int     `yaml:"liner,omitempty"`
	// bend
	Angle float64 `yaml:"angle,omitempty"`
	Vanes bool    `yaml:"vanes,omitempty"`
	// damper
	BladeAngle float64 `yaml:"blade_angle,omitempty"`
	// diffuser, grill, silencer
	FreeArea float64 `yaml:"free_area,omitempty"`
	Flush    bool    `yaml:"flush,omitempty"`
	// silencer
	InsertionLoss []float64 `yaml:"insertion_loss,omitempty"`
	// fan
	FanType    string    `yaml:"fan_type,omitempty"`
	Pressure   float64   `yaml:"pressure,omitempty"`
	SoundPower []float64 `yaml:"sound_power,omitempty"`

	// junctions
	Side       string      `yaml:"side,omitempty"`
	Turbulence bool        `yaml:"turbulence,omitempty"`
	Branch     *BranchYAML `yaml:"branch,omitempty"`
	Right      *BranchYAML `yaml:"right,omitempty"`
	Left       *BranchYAML `yaml:"left,omitempty"`

	// plenum
	PlenumType    string               `yaml:"plenum_type,omitempty"`
	Inlet         *domain.CrossSection `yaml:"inlet,omitempty"`
	Outlet        *domain.CrossSection `yaml:"outlet,omitempty"`
	InletDistance int                  `yaml:"inlet_distance,omitempty"`

	// plenum box in mm with depth as its length, room in m
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Depth  float64 `yaml:"depth,omitempty"`

	// room
	Temperature     *float64  `yaml:"temperature,omitempty"`
	Humidity        *float64  `yaml:"humidity,omitempty"`
	Distance        float64   `yaml:"distance,omitempty"`
	Directivity     float64   `yaml:"directivity,omitempty"`
	Absorption      []float64 `yaml:"absorption,omitempty"`
	ExtraAbsorption []float64 `yaml:"extra_absorption,omitempty"`
}

// BranchYAML represents a junction branch
type BranchYAML struct {
	Section  domain.CrossSection `yaml:"section"`
	AirFlow  int                 `yaml:"air_flow"`
	Rounding int                 `yaml:"rounding,omitempty"`
	Shape    string              `yaml:"shape,omitempty"`
}

// LinkYAML represents an informational link between two elements
type LinkYAML struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Port string `yaml:"port,omitempty"`
}

// Options controls how a network file becomes a domain.Network
type Options struct {
	// Formulas is handed to every element; nil selects acoustic.Standard
	Formulas domain.Formulas
	// Temperature and Humidity apply to rooms when neither the room nor
	// the file defaults set them
	Temperature float64
	Humidity    float64
}

// DefaultOptions returns options for a 20 °C, 50 % room climate
func DefaultOptions() Options {
	return Options{Temperature: 20, Humidity: 50}
}

// LoadYAML loads a network from a YAML file
func LoadYAML(path string, opts Options) (*domain.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseYAML(data, opts)
}

// ParseYAML parses a network from YAML bytes
func ParseYAML(data []byte, opts Options) (*domain.Network, error) {
	var yamlData NetworkYAML
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return convertYAMLToNetwork(&yamlData, opts)
}

func convertYAMLToNetwork(y *NetworkYAML, opts Options) (*domain.Network, error) {
	if y.Defaults != nil {
		if y.Defaults.Temperature != nil {
			opts.Temperature = *y.Defaults.Temperature
		}
		if y.Defaults.Humidity != nil {
			opts.Humidity = *y.Defaults.Humidity
		}
	}

	network := domain.NewNetwork(y.Name)
	network.Description = y.Description

	for i := range y.Elements {
		e := &y.Elements[i]
		element, err := buildElement(e, opts)
		if err != nil {
			return nil, fmt.Errorf("element %d (%s): %w", i, e.ID, err)
		}
		if err := network.Add(element); err != nil {
			return nil, err
		}
	}

	for _, l := range y.Links {
		if err := network.Connect(l.From, l.To, domain.PortName(l.Port)); err != nil {
			return nil, fmt.Errorf("link %s->%s: %w", l.From, l.To, err)
		}
	}

	return network, nil
}

func buildElement(e *ElementYAML, opts Options) (domain.Element, error) {
	f := opts.Formulas
	kind := acoustic.ElementKind(strings.ToLower(e.Kind))

	switch kind {
	case acoustic.KindDuct:
		section, err := sectionOf(e.Section, "section")
		if err != nil {
			return nil, err
		}
		return domain.NewStraightDuct(domain.DuctConfig{
			ID:             e.ID,
			Section:        section,
			AirFlow:        e.AirFlow,
			Length:         e.Length,
			LinerThickness: e.Liner,
		}, f), nil

	case acoustic.KindBend:
		section, err := sectionOf(e.Section, "section")
		if err != nil {
			return nil, err
		}
		return domain.NewBend(domain.BendConfig{
			ID:      e.ID,
			Section: section,
			AirFlow: e.AirFlow,
			Angle:   e.Angle,
			Vanes:   e.Vanes,
		}, f), nil

	case acoustic.KindDamper:
		section, err := sectionOf(e.Section, "section")
		if err != nil {
			return nil, err
		}
		return domain.NewDamper(domain.DamperConfig{
			ID:         e.ID,
			Section:    section,
			AirFlow:    e.AirFlow,
			BladeAngle: e.BladeAngle,
		}, f), nil

	case acoustic.KindDiffuser, acoustic.KindGrill:
		section, err := sectionOf(e.Section, "section")
		if err != nil {
			return nil, err
		}
		cfg := domain.TerminalConfig{
			ID:       e.ID,
			Section:  section,
			AirFlow:  e.AirFlow,
			FreeArea: orDefault(e.FreeArea, 100),
			Flush:    e.Flush,
		}
		if kind == acoustic.KindGrill {
			return domain.NewGrill(cfg, f), nil
		}
		return domain.NewDiffuser(cfg, f), nil

	case acoustic.KindSilencer:
		section, err := sectionOf(e.Section, "section")
		if err != nil {
			return nil, err
		}
		loss, err := bandsOf(e.InsertionLoss, "insertion_loss")
		if err != nil {
			return nil, err
		}
		return domain.NewSilencer(domain.SilencerConfig{
			ID:          e.ID,
			Section:     section,
			AirFlow:     e.AirFlow,
			Length:      e.Length,
			FreeArea:    orDefault(e.FreeArea, 50),
			Attenuation: loss,
		}, f), nil

	case acoustic.KindFan:
		return buildFan(e, f)

	case acoustic.KindPlenum:
		return buildPlenum(e, f)

	case acoustic.KindRoom:
		return buildRoom(e, opts)

	case acoustic.KindJunction, acoustic.KindDoubleJunction, acoustic.KindTJunction:
		return buildJunction(kind, e, f)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
}

func buildFan(e *ElementYAML, f domain.Formulas) (domain.Element, error) {
	cfg := domain.FanConfig{
		ID:       e.ID,
		Type:     acoustic.FanCentrifugalBackward,
		AirFlow:  e.AirFlow,
		Pressure: e.Pressure,
	}
	if e.FanType != "" {
		cfg.Type = acoustic.FanType(strings.ToLower(e.FanType))
		if !cfg.Type.Valid() {
			return nil, fmt.Errorf("unknown fan type %q", e.FanType)
		}
	}
	if len(e.SoundPower) > 0 {
		b, err := bandsOf(e.SoundPower, "sound_power")
		if err != nil {
			return nil, err
		}
		cfg.SoundPower = &b
	}
	return domain.NewFan(cfg, f), nil
}

func buildPlenum(e *ElementYAML, f domain.Formulas) (domain.Element, error) {
	inlet, err := sectionOf(e.Inlet, "inlet")
	if err != nil {
		return nil, err
	}
	outlet, err := sectionOf(e.Outlet, "outlet")
	if err != nil {
		return nil, err
	}

	cfg := domain.PlenumConfig{
		ID:             e.ID,
		Type:           domain.PlenumVertical,
		Inlet:          inlet,
		Outlet:         outlet,
		AirFlow:        e.AirFlow,
		Width:          int(e.Width),
		Height:         int(e.Height),
		Length:         int(e.Depth),
		InletDistance:  e.InletDistance,
		LinerThickness: e.Liner,
	}
	switch domain.PlenumType(strings.ToLower(e.PlenumType)) {
	case "", domain.PlenumVertical:
	case domain.PlenumHorizontal:
		cfg.Type = domain.PlenumHorizontal
	default:
		return nil, fmt.Errorf("unknown plenum type %q", e.PlenumType)
	}
	return domain.NewPlenum(cfg, f), nil
}

func buildRoom(e *ElementYAML, opts Options) (domain.Element, error) {
	absorption, err := bandsOf(e.Absorption, "absorption")
	if err != nil {
		return nil, err
	}
	if len(e.Absorption) == 0 {
		absorption = octave.Uniform(0.1)
	}
	extra, err := bandsOf(e.ExtraAbsorption, "extra_absorption")
	if err != nil {
		return nil, err
	}

	cfg := domain.RoomConfig{
		ID:          e.ID,
		Width:       e.Width,
		Length:      e.Length,
		Height:      e.Height,
		Temperature: opts.Temperature,
		Humidity:    opts.Humidity,
		Distance:    e.Distance,
		Directivity: e.Directivity,
		Absorption:  absorption,
		Extra:       extra,
	}
	if e.Temperature != nil {
		cfg.Temperature = *e.Temperature
	}
	if e.Humidity != nil {
		cfg.Humidity = *e.Humidity
	}
	return domain.NewRoom(cfg, opts.Formulas), nil
}

func buildJunction(kind acoustic.ElementKind, e *ElementYAML, f domain.Formulas) (domain.Element, error) {
	main, err := sectionOf(e.Section, "section")
	if err != nil {
		return nil, err
	}
	side, err := parseSide(e.Side)
	if err != nil {
		return nil, err
	}

	switch kind {
	case acoustic.KindJunction:
		branch, err := branchOf(e.Branch, "branch")
		if err != nil {
			return nil, err
		}
		j := domain.NewJunction(domain.JunctionConfig{
			ID:         e.ID,
			Main:       main,
			AirFlow:    e.AirFlow,
			Branch:     branch,
			Turbulence: e.Turbulence,
		}, f)
		if side == domain.ConnectionOutlet {
			j.SetAirFlow(domain.ConnectionOutlet, j.Outlet().AirFlow())
		}
		return j, nil
	}

	right, err := branchOf(e.Right, "right")
	if err != nil {
		return nil, err
	}
	left, err := branchOf(e.Left, "left")
	if err != nil {
		return nil, err
	}

	if kind == acoustic.KindTJunction {
		return domain.NewTJunction(domain.TJunctionConfig{
			ID:         e.ID,
			Main:       main,
			AirFlow:    e.AirFlow,
			Right:      right,
			Left:       left,
			Side:       side,
			Turbulence: e.Turbulence,
		}, f), nil
	}

	d := domain.NewDoubleJunction(domain.DoubleJunctionConfig{
		ID:         e.ID,
		Main:       main,
		AirFlow:    e.AirFlow,
		Right:      right,
		Left:       left,
		Turbulence: e.Turbulence,
	}, f)
	if side == domain.ConnectionOutlet {
		d.SetAirFlow(domain.ConnectionOutlet, d.Outlet().AirFlow())
	}
	return d, nil
}

func sectionOf(s *domain.CrossSection, field string) (domain.CrossSection, error) {
	if s == nil {
		return domain.CrossSection{}, fmt.Errorf("missing %s", field)
	}
	t, ok := domain.ParseDuctType(strings.ToLower(string(s.Type)))
	if !ok {
		return domain.CrossSection{}, fmt.Errorf("%s: unknown duct type %q", field, s.Type)
	}
	out := *s
	out.Type = t
	return out, nil
}

func branchOf(b *BranchYAML, field string) (domain.BranchConfig, error) {
	if b == nil {
		return domain.BranchConfig{}, fmt.Errorf("missing %s", field)
	}
	section, err := sectionOf(&b.Section, field+".section")
	if err != nil {
		return domain.BranchConfig{}, err
	}
	cfg := domain.BranchConfig{
		Section:  section,
		AirFlow:  b.AirFlow,
		Rounding: b.Rounding,
	}
	switch strings.ToLower(b.Shape) {
	case "", "straight":
		cfg.Type = acoustic.ShapeStraight
	case "rounded":
		cfg.Type = acoustic.ShapeRounded
	default:
		return domain.BranchConfig{}, fmt.Errorf("%s: unknown shape %q", field, b.Shape)
	}
	return cfg, nil
}

func parseSide(s string) (domain.JunctionConnectionSide, error) {
	switch strings.ToLower(s) {
	case "", "inlet":
		return domain.ConnectionInlet, nil
	case "outlet":
		return domain.ConnectionOutlet, nil
	default:
		return domain.ConnectionInlet, fmt.Errorf("unknown side %q", s)
	}
}

// bandsOf converts a list of up to eight values, 63 Hz first
func bandsOf(values []float64, field string) (octave.Bands, error) {
	var b octave.Bands
	if len(values) > octave.Count {
		return b, fmt.Errorf("%s: expected at most %d bands, got %d", field, octave.Count, len(values))
	}
	copy(b[:], values)
	return b, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
