package internal

// ForcedCloses reports how many times Destroy had to close connections forcibly.
func (s *Server) ForcedCloses() int32 {
	return s.forcedCloses.Load()
}
