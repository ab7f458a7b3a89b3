package scenes

import (
	"fmt"

	"github.com/cbodonnell/seafarer/client/fonts"
	"github.com/cbodonnell/seafarer/client/session"
	"github.com/ebitenui/ebitenui/widget"
)

// AuthScene is the login form.
type AuthScene struct {
	*BaseScene

	opts       AuthSceneOptions
	emailInput *widget.TextInput
}

type AuthSceneOptions struct {
	// View returns the current session view.
	View              func() session.View
	OnEmailChanged    func(email string)
	OnPasswordChanged func(password string)
	// OnLogin is called when the form is submitted. It must not block.
	OnLogin           func()
	// OnGuest starts playing without an account.
	OnGuest           func()
}

var _ Scene = &AuthScene{}

func NewAuthScene(opts AuthSceneOptions) *AuthScene {
	s := &AuthScene{opts: opts}
	s.BaseScene = NewBaseScene(s.render)
	return s
}

func (s *AuthScene) Init() error {
	if err := s.BaseScene.Init(); err != nil {
		return err
	}
	s.emailInput.Focus(true)
	return nil
}

func (s *AuthScene) Update() error {
	login := s.opts.View().Login
	s.Refresh(fmt.Sprintf("%t|%s", login.Loading, login.Error))
	return s.BaseScene.Update()
}

func (s *AuthScene) render() *widget.Container {
	view := s.opts.View()

	root := verticalContainer(16, widget.Insets{
		Top:    110,
		Left:   200,
		Right:  200,
		Bottom: 60,
	})

	root.AddChild(newLabel("Seafarer", fonts.TitleFont, textColor))

	emailInput := newTextInput("Email", false, s.opts.OnEmailChanged)
	emailInput.SetText(view.Login.Email)
	root.AddChild(emailInput)
	s.emailInput = emailInput

	passwordInput := newTextInput("Password", true, s.opts.OnPasswordChanged)
	passwordInput.SetText(view.Login.Password)
	root.AddChild(passwordInput)

	label := "Login"
	if view.Login.Loading {
		label = "Logging in..."
	}
	submit := func() {
		if s.opts.View().Login.Loading {
			return
		}
		s.opts.OnLogin()
	}
	root.AddChild(newButton(label, view.Login.Loading, submit))

	if view.Login.Error != "" {
		root.AddChild(newLabel(view.Login.Error, fonts.TTFSmallFont, errorColor))
	}

	root.AddChild(newButton("Play without an account", view.Login.Loading, s.opts.OnGuest))

	// register the submit handler with the inputs
	submitHandler := func(args interface{}) {
		submit()
	}
	emailInput.SubmitEvent.AddHandler(submitHandler)
	passwordInput.SubmitEvent.AddHandler(submitHandler)

	return root
}
