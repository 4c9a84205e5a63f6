// Package collection loads YAML collections of reusable request templates.
//
// A collection lives at <dir>/<name>.yaml (or .yml) and holds a variables
// table plus a list of named requests:
//
//	variables:
//	  base_url: https://api.example.com
//	requests:
//	  - name: get-user
//	    method: GET
//	    url: ${base_url}/users/1
//	    headers:
//	      Accept: application/json
//	    body:
//	      json:
//	        name: alice
//
// The collection's name is always the file name without its extension.
// Files are validated against an embedded JSON Schema before use, and
// duplicate request names are rejected at load time.
package collection
