// Package retry repeats whole operations with exponential backoff.
//
// Retrying happens only at the whole-call level: a resolve or listing call
// that failed may be repeated from the top, but the acquisition strategies
// inside a call each run exactly once per attempt. The default predicate
// consults the error taxonomy, so definitive outcomes like a not-found are
// never retried.
//
// Usage:
//
//	cfg := retry.FromConfig(&appConfig.Retry, log)
//	err := retry.Do(func() error {
//	    profile = resolver.Resolve(username)
//	    if profile == nil {
//	        return errors.New(errors.ErrorTypeStrategy, 0, "profile not resolvable")
//	    }
//	    return nil
//	}, cfg)
package retry
