// Package domain models an HVAC duct network as a set of acoustic elements.
//
// Every element answers two questions per octave band: how much sound it
// attenuates and how much flow noise it generates. The numbers come from a
// Formulas implementation; the domain only resolves geometry, duct type and
// airflow and forwards them.
//
// # Connections
//
// DuctConnection is a cross-section (rectangular or round) carrying an
// airflow. Setters never fail: out-of-range values saturate to the nearest
// legal bound and a change signal fires synchronously before the setter
// returns.
//
// # Branching
//
// Junction, DoubleJunction and TJunction split or merge airflow between a
// main duct and one or two branches. They own their ports and branches and
// keep inlet = outlet + sum(branches) after every mutation, whichever part
// was changed. A JunctionConnectionSide records whether the inlet or the
// outlet is authoritative; the other side is derived.
//
// # Plenum
//
// Plenum listens to its two ports and grows its box so both cross-sections
// always fit. Recomputation order is length, width, height, inlet distance.
//
// # Design Principles
//
// - Single-threaded and synchronous; no element is safe for concurrent use
// - Never error, always saturate
// - Composites exclusively own their parts; branches hold non-owning
//   back-references resolved through the owning node
package domain
