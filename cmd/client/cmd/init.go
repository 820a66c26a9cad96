// cmd/client/cmd/init.go
package cmd

import (
	"notekeeper/cmd/client/cmd/auth"
	"notekeeper/cmd/client/cmd/note"
)

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(note.NoteCmd)
	note.NoteCmd.AddCommand(note.ListCmd)
	note.NoteCmd.AddCommand(note.CreateCmd)
	note.NoteCmd.AddCommand(note.EditCmd)
	note.NoteCmd.AddCommand(note.DeleteCmd)
}
