// Package profiles stores named profiles in a JSON file.
//
// The file is a single object mapping profile names to their content:
//
//	{
//	    "github": {
//	        "user": "alice",
//	        "token": {"token": "...", "cbc_iv": "...", "padding_size": 3},
//	        "template": "gh auth login --with-token <<< {?token}"
//	    }
//	}
//
// Plain values are strings. Encrypted values are the base64 EncryptedValue
// triple from internal/secrets. Other JSON values are preserved untouched.
// The reserved "template" and "file" keys hold the exec command template and
// the wallet target path.
//
// Content implements templates.Content, so a profile can be handed straight
// to the template engine.
package profiles
