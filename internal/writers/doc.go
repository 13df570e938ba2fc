// Package writers turns ranked references and run metrics into serialized
// outputs.
//
// Design:
//   - Writers own all presentation dispatch (text/JSON/JSONL, YAML metrics).
//   - Engine stays domain-only; Pipeline stays orchestration-only.
//   - JSON/JSONL/YAML go through pkg/api (v1) for a stable wire format.
package writers
