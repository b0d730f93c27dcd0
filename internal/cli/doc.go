// Package cli is an interactive front end to an in-process user registry.
//
// Commands:
//
//	create            register a user (prompts for email and password)
//	get <id>          look a user up by id
//	find <email>      look a user up by email
//	verify <id>       check a password for a user
//	count | list      registry size / all users in insertion order
//	total <price>...  sum of the given prices
//	token             print a random token
//	help, exit, quit
package cli
