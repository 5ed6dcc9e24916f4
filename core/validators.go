package core

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_br_translations "github.com/go-playground/validator/v10/translations/pt_BR"
	"github.com/pkg/errors"
)

// custom validation tags & texts (user facing; Portuguese like the API)
var (
	telefoneTag   = "telefone_br"
	telefoneRegex = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)

	cnpjTag   = "cnpj"
	cnpjRegex = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)

	cepTag   = "cep"
	cepRegex = regexp.MustCompile(`^\d{5}-?\d{3}$`)

	senhaTag        = "senha_forte"
	nomeCompletoTag = "nome_completo"

	requiredText     = "{0} é obrigatório"
	emailText        = "{0} inválido"
	invalidText      = "{0} inválido"
	senhaText        = "{0} deve ter no mínimo 8 caracteres, com letra maiúscula e número"
	nomeCompletoText = "{0}: digite nome e sobrenome"
	eqfieldText      = "as senhas não coincidem"
)

// Validator bundles a validator.Validate instance with its translator.
// Pre-submit validation failures block the request entirely.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewValidator() *Validator {
	ptBR := pt_BR.New()
	uni := ut.New(ptBR, ptBR)
	trans, _ := uni.GetTranslator("pt_BR")

	validate := validator.New()
	_ = pt_br_translations.RegisterDefaultTranslations(validate, trans)

	// Use `label` tag (falling back to the JSON name) for error messages
	// instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(telefoneTag, regexValidation(telefoneRegex))
	_ = validate.RegisterValidation(cnpjTag, regexValidation(cnpjRegex))
	_ = validate.RegisterValidation(cepTag, regexValidation(cepRegex))
	_ = validate.RegisterValidation(senhaTag, senhaValidation)
	_ = validate.RegisterValidation(nomeCompletoTag, nomeCompletoValidation)

	v := &Validator{validate: validate, trans: trans}
	v.registerTranslation(requiredTagName, requiredText, true)
	v.registerTranslation("email", emailText, true)
	v.registerTranslation(telefoneTag, invalidText)
	v.registerTranslation(cnpjTag, invalidText)
	v.registerTranslation(cepTag, invalidText)
	v.registerTranslation(senhaTag, senhaText)
	v.registerTranslation(nomeCompletoTag, nomeCompletoText)
	v.registerTranslation("eqfield", eqfieldText, true)
	return v
}

const requiredTagName = "required"

// Check validates a payload and wraps any failure in a *ValidationError.
func (v *Validator) Check(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(v.trans)})
	}
	return NewValidationError(errors.New("dados inválidos"), flds...)
}

// registerTranslation registers a custom translation for the specified validation tag.
func (v *Validator) registerTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = v.validate.RegisterTranslation(
		tag, v.trans,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

func regexValidation(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// senhaValidation enforces min 8 chars with at least one uppercase letter and one digit.
func senhaValidation(fl validator.FieldLevel) bool {
	pwd := fl.Field().String()
	if len(pwd) < 8 {
		return false
	}
	var upper, digit bool
	for _, r := range pwd {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && digit
}

// nomeCompletoValidation requires at least a first and a last name.
func nomeCompletoValidation(fl validator.FieldLevel) bool {
	nome := CleanString(fl.Field().String())
	return len(nome) >= 3 && len(strings.Fields(nome)) >= 2
}
