package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
)

func (a *App) WhoAmI(_ context.Context) error {
	st := a.state()
	// the session may have ended since the access check
	if st.User == nil {
		a.println("Not logged in")
		return nil
	}
	a.printf("User:   %s (%s)\n", st.User.Email, st.User.ID)
	a.printf("Name:   %s\n", displayName(st.Profile, st.User))
	switch {
	case !st.ProfileLoaded:
		a.println("Role:   (loading)")
	case st.Role == models.RoleNone:
		a.println("Role:   (none)")
	default:
		a.printf("Role:   %s\n", st.Role)
	}
	if st.Session != nil && !st.Session.ExpiresAt.IsZero() {
		a.printf("Token expires at %s\n", st.Session.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *App) Dashboard(_ context.Context) error {
	st := a.state()
	d := st.Dashboard()
	a.printf("%s (%s)\n", d.Name, d.Path)

	actions := []string{"profile", "wallet", "bookinglog"}
	if st.Role.CanReview() {
		actions = append(actions, "review")
	}
	if st.Role.CanUpdateBookingStatus() {
		actions = append(actions, "setstatus")
	}
	if st.Role.CanViewReports() {
		actions = append(actions, "reports (web only)")
	}
	a.println("Actions:", strings.Join(actions, ", "))
	return nil
}

func (a *App) Profile(_ context.Context) error {
	st := a.state()
	if st.Profile == nil {
		if st.ProfileLoaded {
			a.println("No profile yet. It is created once your account is confirmed.")
		} else {
			a.println("Profile is still loading, try again shortly.")
		}
		return nil
	}

	p := st.Profile
	rows := [][2]string{
		{"Full name", p.FullName},
		{"Phone", p.Phone},
		{"Company", p.CompanyName},
		{"Location", p.Location},
		{"Bio", p.Bio},
		{"Avatar", p.AvatarURL},
	}
	for _, r := range rows {
		if r[1] == "" {
			r[1] = "-"
		}
		a.printf("%-10s %s\n", r[0]+":", r[1])
	}
	return nil
}

// EditProfile prompts for every editable field; an empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	cur := models.Profile{}
	if p := a.state().Profile; p != nil {
		cur = *p
	}

	var (
		u   models.ProfileUpdate
		err error
	)
	a.println("Press Enter to keep a value, '-' to clear it.")
	fields := []struct {
		prompt  string
		current string
		dst     **string
	}{
		{"Full name", cur.FullName, &u.FullName},
		{"Phone", cur.Phone, &u.Phone},
		{"Company", cur.CompanyName, &u.CompanyName},
		{"Location", cur.Location, &u.Location},
		{"Bio", cur.Bio, &u.Bio},
	}
	for _, f := range fields {
		if *f.dst, err = getOptionalText(a.reader, f.prompt, f.current, a.out); err != nil {
			return err
		}
	}

	if u.Empty() {
		a.println("Nothing to change")
		return nil
	}
	if err := a.session.UpdateProfile(ctx, u); err != nil {
		return a.fail(ctx, "Profile update", err)
	}
	a.println("Profile updated")
	return nil
}

// Avatar uploads an image file and sets it as the profile picture. The path
// may be given as the first argument.
func (a *App) Avatar(ctx context.Context, args []string) error {
	if a.avatars == nil {
		a.println("Avatar upload is not configured")
		return nil
	}

	path := strings.Join(args, " ")
	if path == "" {
		var err error
		if path, err = getSimpleText(a.reader, "Image file path", a.out); err != nil {
			return err
		}
	}

	url, err := a.avatars.Upload(ctx, path)
	if err != nil {
		return a.fail(ctx, "Avatar upload", err)
	}
	a.printf("Avatar updated: %s\n", url)
	return nil
}
