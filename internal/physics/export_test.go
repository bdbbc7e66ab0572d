package physics

// DropLastTrail removes the final trail so bodies and trails fall out of step.
func DropLastTrail(r *Registry) {
	r.trails = r.trails[:len(r.trails)-1]
}
