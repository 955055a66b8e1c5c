// meta/meta.go
package meta

// HANDS defines the number of hands played by a simulation.
const HANDS = 10000

// GOROUTINES defines the number of goroutines recording hands.
const GOROUTINES = 8

// SEED defines the seed of the first hand; hand i uses SEED+i.
const SEED = 42

// SCHEME defines the action mapping scheme.
const SCHEME = "basic"

// BUCKETS defines the pot fractions of the bucket scheme.
var BUCKETS = []float64{0.5, 1, 2}

// THROUGHPUT_GOROUTINES defines the goroutine counts the throughput experiment sweeps.
var THROUGHPUT_GOROUTINES = []int{1, 2, 4, 8, 16, 32}

const LOG_LEVEL = "info"

// OUTPUT_DIR defines where experiment records are written.
const OUTPUT_DIR = "records"
