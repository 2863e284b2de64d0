// Package codec is the response contract shared by every API namespace.
//
// Handlers are codec.HandlerFunc values: they return a result and an error and
// never write to the response. Codec.Handle applies the mapping:
//
//   - nil result (nil interface, pointer, slice, map, chan or func): 204 No
//     Content with no body.
//   - any other result: 200, application/json, UTF-8 without BOM, encoded by
//     Marshal. Struct fields without a json name become lowerCamelCase;
//     explicit json tags win.
//   - error: an ErrorBody {typeName, message, statusCode}, with the status taken
//     from the *apperr.Error (explicit status or kind default) and 500 for
//     anything unclassified.
//
// Codec.ErrorHandler is installed as fiber's ErrorHandler. It answers errors
// that escape the namespaces; a not-found from the static mount becomes a bare
// 404 so missing assets do not look like API failures.
package codec
