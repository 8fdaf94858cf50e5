// Package crowd is the client of the crowd-sourced size database, which maps
// Steam appids to the install size users have measured.
//
// # Operations
//
//   - LookupSizes: GET /apps with a JSON body {"ids": [...]} for up to 100
//     appids, answered by a JSON array of {AppId, Size, Name}.
//   - GetSize: GET /app/{appid}; 404 means there is no record.
//   - AddSize: POST /app/{appid}?size=&name= for a game seen for the first time.
//   - UpdateSize: PUT /app/{appid}?size=&name= for a record that is off.
//
// A write that is not answered with a 2xx status is ErrWriteRejected. Requests
// can be rate limited with crowd.requests_per_second; there are no retries.
//
// # Usage
//
//	client := crowd.NewClient(cfg.Crowd, httpClient, log)
//	index, err := reconcile.LookupAll(ctx, client, appids, cfg.Crowd.BatchSize)
package crowd
