// Package orchestration runs one or more batch strategies over the same
// roster concurrently and checks that they agree. It decouples business
// logic from presentation via the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
