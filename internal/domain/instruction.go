package domain

import "fmt"

// InstructionType discriminates the variants of Instruction
type InstructionType string

const (
	InstructionCopy      InstructionType = "copy"
	InstructionAttribute InstructionType = "attribute"
)

// Instruction is a declarative directive consumed by the host's deployment engine.
// Copy instructions use Source and Destination; attribute instructions use Key and Value.
type Instruction struct {
	Type        InstructionType `json:"type" yaml:"type"`
	Source      string          `json:"source,omitempty" yaml:"source,omitempty"`
	Destination string          `json:"destination,omitempty" yaml:"destination,omitempty"`
	Key         string          `json:"key,omitempty" yaml:"key,omitempty"`
	Value       any             `json:"value,omitempty" yaml:"value,omitempty"`
}

// Copy creates a copy instruction
func Copy(source, destination string) Instruction {
	return Instruction{Type: InstructionCopy, Source: source, Destination: destination}
}

// Attribute creates an attribute instruction
func Attribute(key string, value any) Instruction {
	return Instruction{Type: InstructionAttribute, Key: key, Value: value}
}

// IsCopy returns true for copy instructions
func (i Instruction) IsCopy() bool {
	return i.Type == InstructionCopy
}

func (i Instruction) String() string {
	switch i.Type {
	case InstructionCopy:
		return fmt.Sprintf("copy %s -> %s", i.Source, i.Destination)
	case InstructionAttribute:
		return fmt.Sprintf("attribute %s = %v", i.Key, i.Value)
	default:
		return string(i.Type)
	}
}

// InstallResult is the resolved outcome of an install attempt
type InstallResult struct {
	Instructions []Instruction `json:"instructions"`
}

// CopyCount returns the number of copy instructions in the result
func (r *InstallResult) CopyCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, inst := range r.Instructions {
		if inst.IsCopy() {
			n++
		}
	}
	return n
}

// SupportedResult reports whether an installer can handle a file list
type SupportedResult struct {
	Supported     bool     `json:"supported"`
	RequiredFiles []string `json:"requiredFiles"`
}
