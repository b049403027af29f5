package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/b08x/ScreenDoc/internal/progress"
)

// runWithProgress wraps a provider call of unknown duration with the
// cosmetic percentage estimator. The percentage carries no information about
// real progress.
func runWithProgress(ctx context.Context, stage string, fn func() error) error {
	estimator := progress.NewEstimator(func(percent int) {
		fmt.Fprintf(os.Stderr, "\r%s... %3d%%", stage, percent)
	})

	estimator.Start(ctx)

	if err := fn(); err != nil {
		estimator.Fail()
		fmt.Fprintln(os.Stderr)
		return err
	}

	estimator.Done()
	fmt.Fprintln(os.Stderr)
	return nil
}
