// Package graph implements the stochastic computation graph: tensors
// wrapped into nodes that track parents, children and plate (independent
// dimension) structure as operations execute.
//
// Nodes come in three variants. Deterministic nodes are produced by
// intercepted operations and by NewDeterministic/NewCost; Independent nodes
// declare an existing tensor dimension independent; Stochastic nodes wrap
// sampling events and own gradient accumulation slots for the backward
// orchestrator.
//
// All graph state scoped to one forward/backward cycle lives in a Context;
// there are no process-wide registries.
package graph
