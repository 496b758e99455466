package resource

import "strings"

// Specs is descriptive hardware data. The booking core never interprets it.
type Specs struct {
	CPU     string
	GPU     string
	RAM     string
	Storage string
	Monitor string
}

func NewSpecs(cpu, gpu, ram, storage, monitor string) Specs {
	return Specs{
		CPU:     strings.TrimSpace(cpu),
		GPU:     strings.TrimSpace(gpu),
		RAM:     strings.TrimSpace(ram),
		Storage: strings.TrimSpace(storage),
		Monitor: strings.TrimSpace(monitor),
	}
}
