// Package instagram resolves public profile and content data from the
// platform's anonymous web surface.
//
// The central type is Resolver, which walks a fixed, ordered chain of
// acquisition strategies for every lookup:
//   - The profile-info JSON endpoint (authoritative, full counts)
//   - Enhanced extraction from the profile HTML page (meta tags plus
//     privacy detection and preview salvage)
//   - The page-embedded script payload on its own
//
// The first strategy that produces a usable profile wins. A 404 from the
// JSON endpoint is treated as authoritative absence and stops the chain.
// Resolution methods never return errors across the public boundary:
// failures are logged and surface as nil profiles or empty slices.
//
// Example usage:
//
//	cfg, _ := config.Load("")
//	session := instagram.NewSession(&cfg.Platform, limiter, log)
//	resolver := instagram.NewResolver(session, cfg, log)
//
//	profile := resolver.Resolve("username")
//	if profile == nil {
//	    // not resolvable, detail is in the log
//	    return
//	}
//	if profile.IsLimitedData {
//	    // counts are not authoritative, previews may be present
//	}
//
//	posts := resolver.ListPosts("username", 12)
//	results := resolver.SearchProfiles("query")
package instagram
