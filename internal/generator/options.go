package generator

import "runtime"

// maxWorkers caps handler goroutines per dependency tier.
const maxWorkers = 32

// Options selects which deployment files are rendered and how many nodes of a tier are
// processed at once.
type Options struct {
	// EmitTfvars adds terraform.tfvars built from the diagram metadata.
	EmitTfvars bool
	// EmitCompose adds docker-compose.yml next to the Terraform files.
	EmitCompose bool
	// MaxParallel bounds concurrent handlers per tier. Zero means one per CPU.
	MaxParallel int
}

// DefaultOptions renders every file with one worker per CPU.
func DefaultOptions() Options {
	return Options{EmitTfvars: true, EmitCompose: true}
}

// workers resolves MaxParallel to a count in [1, maxWorkers].
func (o Options) workers() int {
	n := o.MaxParallel
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return min(n, maxWorkers)
}
