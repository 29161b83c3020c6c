package email

const tempPasswordBody = `<html>
<body>
  <p>임시 비밀번호가 발급되었습니다.</p>
  <p><strong>%s</strong></p>
  <p>로그인 후 반드시 비밀번호를 변경해 주세요.</p>
</body>
</html>`

const verificationCodeBody = `<html>
<body>
  <p>이메일 인증 코드입니다.</p>
  <p><strong>%s</strong></p>
  <p>인증 화면에 위 코드를 입력해 주세요. 코드는 10분 후 만료됩니다.</p>
</body>
</html>`
