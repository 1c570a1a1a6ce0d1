// Package adaptive provides adaptive-filter acoustic noise cancellation in
// pure Go.
//
// A noisy recording d[n] = s[n] + v'[n] contains speech s and noise v' that
// reached the microphone through an unknown acoustic path. Given a reference
// x[n] correlated with the noise, an adaptive FIR filter learns the path and
// predicts y[n] ≈ v'[n]; the error e[n] = d[n] - y[n] is the cleaned signal.
//
// # Algorithms
//
//   - [LMS]: stochastic gradient, W += mu·e·x.
//   - [NLMS]: LMS normalised by the tap-window energy.
//   - [RLS]: recursive least squares with forgetting factor lambda.
//   - [APA]: affine projection over the last K windows.
//   - [FDLMS], [FDNLMS]: block LMS/NLMS computed with overlap-save FFTs,
//     updating the weights once per block of B samples.
//
// # Quick Start
//
//	f, err := adaptive.NewNLMS(32, 0.001)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := f.Filter(noisy, reference, clean)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("SNR improvement: %.2f dB\n", res.Metrics.DeltaSNR)
//
// Pass a nil clean signal to skip scoring. For full control use [Config]:
//
//	cfg := adaptive.DefaultConfig(adaptive.FDNLMS)
//	cfg.BlockSize = 64
//	cfg.Seed = 1
//	f, err := adaptive.New(cfg)
//
// # Metrics
//
// [Metrics] reports MSE, SNR, SNR improvement, loop wall-clock time and
// convergence time. Note that [MSE] is the squared mean of the differences,
// (mean(a-b))², kept for comparability with earlier published results.
//
// # References
//
// When only a noise recording is available, [SimulateReference] adds
// microphone self-noise and a propagation delay. [LineEnhance] derives a
// reference from the noisy signal alone with a delayed linear predictor.
//
// # Thread Safety
//
// A [Filter] is immutable after [New]; every Filter call owns its weights and
// auxiliary state, so concurrent calls are safe. [RunBatch] runs many
// independent signals in parallel.
package adaptive
