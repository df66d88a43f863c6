package commands

// DefaultTarget is the template this tool was first written against
const DefaultTarget = "src/app/modules/employee/components/employee-form/employee-form.component.html"

func targetPath(args []string) string {
	if len(args) == 0 {
		return DefaultTarget
	}
	return args[0]
}
