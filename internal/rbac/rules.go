package rbac

// Default policy. Students get the exam-taking surfaces; admins everything,
// including bank uploads and the submission log.
var RolePermissions = map[string][]string{
	"student": {
		"quiz:view",
		"quiz:submit",
		"progress:save",
		"progress:load",
	},
	"admin": {
		"*",
	},
}
